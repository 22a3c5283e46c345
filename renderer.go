package pdfflow

import (
	"github.com/go-pdf/fpdf"
)

// pdfRenderer adapts *fpdf.Fpdf to the layout.Renderer interface.
//
// The layout engine only sees this narrow surface; everything about
// PDF structure, fonts, and encoding stays inside fpdf. Style state
// (font, size, colors, stroke width) is set directly on the Fpdf
// object by Document before each engine call.
type pdfRenderer struct {
	pdf *fpdf.Fpdf
}

func (r *pdfRenderer) DrawText(x, y float64, text string) {
	r.pdf.Text(x, y, text)
}

func (r *pdfRenderer) DrawLine(x1, y1, x2, y2 float64) {
	r.pdf.Line(x1, y1, x2, y2)
}

func (r *pdfRenderer) DrawImage(name string, x, y, w, h float64) {
	// The image was registered under name by Document.AddImage, so
	// no type options are needed here.
	r.pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{}, 0, "")
}

func (r *pdfRenderer) AddPage() {
	r.pdf.AddPage()
}

func (r *pdfRenderer) SelectPage(index int) {
	r.pdf.SetPage(index)
}

func (r *pdfRenderer) TextWidth(text string) float64 {
	return r.pdf.GetStringWidth(text)
}

func (r *pdfRenderer) SplitText(text string, width float64) []string {
	return r.pdf.SplitText(text, width)
}

func (r *pdfRenderer) PageSize() (w, h float64) {
	return r.pdf.GetPageSize()
}
