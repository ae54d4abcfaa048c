package report

// The palette and spacing follow the report's house style: blue/purple/green
// for the top heading levels, muted grays for body text, and indents that
// grow with nesting depth up to the configured cap.
var (
	colorH1     = Color{30, 58, 138}
	colorH2     = Color{124, 58, 237}
	colorH3     = Color{5, 150, 105}
	colorHDeep  = Color{124, 45, 18}
	colorBody   = Color{31, 41, 55}
	colorList   = Color{55, 65, 81}
	colorQuote  = Color{107, 114, 128}
	colorCode   = Color{220, 38, 38}
	colorRule   = Color{209, 213, 219}
	colorAccent = Color{245, 158, 11}
)

// Resolve annotates every block in place with its computed Style. It is a
// pure function of (kind, heading level, depth) and the config, so applying
// it a second time assigns identical values.
func Resolve(d *Document, cfg Config) {
	d.eachBlock(func(b *Block) {
		b.Style = styleFor(b, cfg)
	})
}

func styleFor(b *Block, cfg Config) Style {
	switch b.Kind {
	case KindHeading:
		return headingStyle(b.Level, cfg)
	case KindParagraph:
		return Style{
			Family: "Helvetica", Size: cfg.BaseFontSize, Color: colorBody,
			Indent: 20, SpaceBefore: 6, SpaceAfter: 10,
		}
	case KindListItem:
		return Style{
			Family: "Helvetica", Size: cfg.BaseFontSize - 1, Color: colorList,
			Indent: indentFor(30, b.Depth, cfg), SpaceBefore: 2, SpaceAfter: 4,
		}
	case KindQuote:
		return Style{
			Family: "Helvetica", FontStyle: "I", Size: cfg.BaseFontSize - 1,
			Color: colorQuote, Indent: indentFor(40, b.Depth-1, cfg),
			SpaceBefore: 8, SpaceAfter: 8,
		}
	case KindCodeBlock:
		return Style{
			Family: "Courier", Size: cfg.BaseFontSize - 2, Color: colorCode,
			Indent: 25, SpaceBefore: 6, SpaceAfter: 6,
		}
	case KindRule:
		return Style{
			Family: "Helvetica", Size: cfg.BaseFontSize, Color: colorRule,
			SpaceBefore: 8, SpaceAfter: 8,
		}
	}
	return Style{Family: "Helvetica", Size: cfg.BaseFontSize, Color: colorBody}
}

// headingStyle gives levels 1-3 decreasing sizes and distinct colors; the
// deeper levels share one compact treatment.
func headingStyle(level int, cfg Config) Style {
	st := Style{Family: "Helvetica", FontStyle: "B"}
	switch level {
	case 1:
		st.Size, st.Color = 20, colorH1
		st.SpaceBefore, st.SpaceAfter = 25, 15
	case 2:
		st.Size, st.Color = 16, colorH2
		st.SpaceBefore, st.SpaceAfter = 15, 10
	case 3:
		st.Size, st.Color = 13, colorH3
		st.SpaceBefore, st.SpaceAfter = 15, 8
	default:
		st.Size, st.Color = 12, colorHDeep
		st.SpaceBefore, st.SpaceAfter = 12, 6
	}
	return st
}

// indentFor grows the left indent linearly with depth and clamps it at the
// configured maximum so deep nesting stays within the page width.
func indentFor(base float64, depth int, cfg Config) float64 {
	if depth < 0 {
		depth = 0
	}
	if depth > cfg.MaxDepth {
		depth = cfg.MaxDepth
	}
	return base + float64(depth)*12
}
