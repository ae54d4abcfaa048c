// Command server exposes the report compiler over HTTP.
package main

import (
	"log"
	"net/http"

	web3press "github.com/opd-ai/web3press"
	"github.com/opd-ai/web3press/srv"
)

func main() {
	cfg := web3press.Load()
	s := srv.New(cfg.Page)
	log.Printf("listening on :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, s))
}
