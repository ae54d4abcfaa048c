package report

import "strings"

// unescape converts the literal \n and \t sequences some AI producers emit
// inside JSON-shaped replies into real whitespace before parsing.
func unescape(text string) string {
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = strings.ReplaceAll(text, `\t`, "\t")
	return text
}

// cleanText replaces characters the core PDF fonts cannot carry.
func cleanText(text string) string {
	replacer := strings.NewReplacer(
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
		"–", "-",
		"—", "-",
		"…", "...",
		" ", " ",
	)
	text = replacer.Replace(text)

	// Strip emoji and other symbols outside the latin-1 range; the core
	// fonts have no glyphs for them.
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if r < 0x2500 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
