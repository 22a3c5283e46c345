package pdfflow

import "strings"

// PaperSize is a named page format with its dimensions in
// millimeters (portrait orientation).
type PaperSize struct {
	Name   string
	Width  float64 // mm
	Height float64 // mm
}

// Supported paper sizes. Options.Size must name one of these.
var (
	A3      = PaperSize{Name: "A3", Width: 297, Height: 420}
	A4      = PaperSize{Name: "A4", Width: 210, Height: 297}
	A5      = PaperSize{Name: "A5", Width: 148, Height: 210}
	Letter  = PaperSize{Name: "Letter", Width: 215.9, Height: 279.4}
	Legal   = PaperSize{Name: "Legal", Width: 215.9, Height: 355.6}
	Tabloid = PaperSize{Name: "Tabloid", Width: 279.4, Height: 431.8}
)

// paperSizes indexes the supported formats by lower-cased name.
var paperSizes = map[string]PaperSize{
	"a3":      A3,
	"a4":      A4,
	"a5":      A5,
	"letter":  Letter,
	"legal":   Legal,
	"tabloid": Tabloid,
}

// PaperSizeByName looks up a paper size by name, case-insensitively.
func PaperSizeByName(name string) (PaperSize, bool) {
	ps, ok := paperSizes[strings.ToLower(name)]
	return ps, ok
}
