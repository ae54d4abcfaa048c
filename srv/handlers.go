package srv

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/russross/blackfriday/v2"
)

type renderRequest struct {
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

const maxRequestBytes = 2 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender accepts a markdown document, renders it synchronously (the
// engine is a bounded CPU transform) and stores the result under a job ID.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Markdown == "" {
		http.Error(w, "markdown is required", http.StatusBadRequest)
		return
	}

	job := &Job{
		ID:        uuid.New().String(),
		Title:     req.Title,
		CreatedAt: time.Now(),
		Markdown:  req.Markdown,
	}
	pdf, err := s.compiler.Render(req.Markdown)
	if err != nil {
		log.Printf("srv: render %s failed: %v", job.ID, err)
		job.Status = "error"
		job.Error = err.Error()
	} else {
		job.Status = "complete"
		job.PDF = pdf
	}
	s.jobs.Set(job.ID, job, cache.DefaultExpiration)

	status := http.StatusCreated
	if job.Status == "error" {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, job)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	job, ok := s.job(chi.URLParam(r, "jobID"))
	if !ok {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	if job.Status != "complete" {
		http.Error(w, "report was not rendered: "+job.Error, http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=report-%s.pdf", job.ID))
	w.Write(job.PDF)
}

// handlePreview renders the job's source markdown as HTML for a quick look
// without opening the PDF.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	job, ok := s.job(chi.URLParam(r, "jobID"))
	if !ok {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	body := blackfriday.Run([]byte(job.Markdown))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><title>%s</title></head><body>\n", job.Title)
	w.Write(body)
	fmt.Fprint(w, "\n</body></html>\n")
}

func (s *Server) job(id string) (*Job, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := s.jobs.Get(id)
	if !ok {
		return nil, false
	}
	job, ok := v.(*Job)
	return job, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("srv: encoding response: %v", err)
	}
}
