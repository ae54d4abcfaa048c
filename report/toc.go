package report

// BuildTOC collects every heading at or below the configured cutoff level,
// in document order, with the content page index pagination assigned to it.
// It is rebuilt from scratch on every call.
func BuildTOC(d *Document, cfg Config) {
	d.TOC = nil
	d.eachSection(func(s *Section) {
		if s.Heading == nil || s.Level > cfg.TOCMaxLevel {
			return
		}
		d.TOC = append(d.TOC, TOCEntry{
			Text:  s.Title,
			Level: s.Level,
			Page:  s.Heading.Page.Page,
		})
	})
}

// Vertical layout of the rendered contents listing. Rows have a fixed
// height, so the listing's own page count depends only on the entry count.
const (
	tocTitleHeight = 46
	tocRowHeight   = 18
)

// tocPageCount reports how many pages the contents listing occupies. Entry
// rows never list the listing's own pages, so this feeds placement of the
// content pages, not the entry numbers.
func tocPageCount(cfg Config, entries int) int {
	if entries == 0 {
		return 0
	}
	avail := cfg.PageHeight - 2*cfg.Margin
	first := int((avail - tocTitleHeight) / tocRowHeight)
	if first < 1 {
		first = 1
	}
	if entries <= first {
		return 1
	}
	perPage := int(avail / tocRowHeight)
	if perPage < 1 {
		perPage = 1
	}
	rest := entries - first
	return 1 + (rest+perPage-1)/perPage
}
