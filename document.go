// Package pdfflow is a cursor-driven convenience layer over the fpdf
// PDF library.
//
// A Document tracks a virtual write cursor across pages so callers
// can append text blocks, paragraphs, horizontal rules, images, and
// vertical whitespace without computing coordinates. Content-adding
// methods return the Document for chaining; the first error is
// recorded and reported by Err and by the output methods.
//
// Example:
//
//	doc, err := pdfflow.New(pdfflow.Options{Size: "A4", FontSize: 12})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc.AddArticle("Quarterly Report", &pdfflow.TextOptions{FontSize: 24}).
//	    AddLine(nil).
//	    AddText("Revenue grew ", nil).
//	    AddText("14%", &pdfflow.TextOptions{Color: &pdfflow.Color{R: 0, G: 128, B: 0}}).
//	    AddSpace(10)
//	if err := doc.Save("report.pdf"); err != nil {
//	    log.Fatal(err)
//	}
package pdfflow

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/coregx/pdfflow/internal/layout"
)

// Document is a PDF document under construction.
//
// Document is NOT safe for concurrent use. Each goroutine should
// build its own Document; separate instances are fully independent.
//
// After Save, WriteTo, or Bytes the document is finalized and no
// further content may be added.
type Document struct {
	pdf    *fpdf.Fpdf
	engine *layout.Engine
	opts   Options

	imageSeq    int
	pageNumbers bool

	// err is the first error recorded by any operation. Once set,
	// all content-adding methods become no-ops.
	err error
}

// New creates an empty single-page document.
//
// Zero-valued fields of opts fall back to the defaults documented on
// Options. The cursor starts at the top-left corner of the content
// area of page 1.
func New(opts Options) (*Document, error) {
	opts.applyDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", opts.Size, "")
	// Pagination belongs to the layout engine, never to fpdf.
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(opts.FontName, "", opts.FontSize)
	pdf.SetTextColor(opts.Color.R, opts.Color.G, opts.Color.B)
	pdf.SetDrawColor(opts.Color.R, opts.Color.G, opts.Color.B)
	pdf.SetCreator("pdfflow", true)
	pdf.AddPage()

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &Document{
		pdf:    pdf,
		opts:   opts,
		engine: layout.New(&pdfRenderer{pdf: pdf}, opts.PagePaddingX, opts.PagePaddingY),
	}, nil
}

// AddText appends a text block at the cursor.
//
// The text continues inline after previously written content on the
// current line; whatever does not fit wraps into full-width lines,
// overflowing to new pages as needed. Pass nil opts for the document
// defaults.
func (d *Document) AddText(text string, opts *TextOptions) *Document {
	if d.err != nil {
		return d
	}
	o := TextOptions{}
	if opts != nil {
		o = *opts
	}
	if err := o.validate(); err != nil {
		return d.fail(err)
	}

	size := o.FontSize
	if size == 0 {
		size = d.opts.FontSize
	}
	color := d.opts.Color
	if o.Color != nil {
		color = *o.Color
	}
	d.applyTextStyle(size, color)

	d.engine.FlowText(text, layout.TextStyle{
		Size:    size,
		Left:    o.Left,
		Right:   o.Right,
		Article: o.Article,
	})
	return d.checkRender()
}

// AddArticle appends a paragraph: the text always starts at the left
// margin, wraps at full content width, and ends with a line break so
// following content never continues on its last line.
//
// It is AddText with TextOptions.Article set.
func (d *Document) AddArticle(text string, opts *TextOptions) *Document {
	o := TextOptions{}
	if opts != nil {
		o = *opts
	}
	o.Article = true
	return d.AddText(text, &o)
}

// AddLine draws a full-width horizontal rule.
//
// Pass nil opts for the defaults (4 mm margins around a 0.5 mm
// stroke, advancing the cursor by 8.5 mm in total). The cursor ends
// at the left margin.
func (d *Document) AddLine(opts *LineOptions) *Document {
	if d.err != nil {
		return d
	}
	if opts == nil {
		opts = DefaultLineOptions()
	}
	o := *opts
	if err := o.validate(); err != nil {
		return d.fail(err)
	}
	if o.Width == 0 {
		o.Width = DefaultLineThickness
	}
	color := d.opts.Color
	if o.Color != nil {
		color = *o.Color
	}

	d.pdf.SetDrawColor(color.R, color.G, color.B)
	d.pdf.SetLineWidth(o.Width)
	d.pdf.SetAlpha(color.alpha(), "Normal")

	d.engine.Rule(o.Top, o.Width, o.Bottom)
	return d.checkRender()
}

// AddImage appends an image, horizontally centered on the page.
//
// The image bytes are read from r. With nil or zero-valued opts the
// image spans the full content width and its height preserves the
// intrinsic aspect ratio; the format is detected from the bytes.
// The cursor ends at the left margin below the image.
func (d *Document) AddImage(r io.Reader, opts *ImageOptions) *Document {
	if d.err != nil {
		return d
	}
	o := ImageOptions{}
	if opts != nil {
		o = *opts
	}
	if err := o.validate(); err != nil {
		return d.fail(err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return d.fail(fmt.Errorf("%w: %v", ErrImageDecode, err))
	}
	format := o.Format
	if format == "" {
		format = sniffImageFormat(data)
		if format == "" {
			return d.fail(fmt.Errorf("%w: unrecognized image format", ErrImageDecode))
		}
	}

	d.imageSeq++
	name := fmt.Sprintf("pdfflow-image-%d", d.imageSeq)
	info := d.pdf.RegisterImageOptionsReader(name,
		fpdf.ImageOptions{ImageType: format}, bytes.NewReader(data))
	if err := d.pdf.Error(); err != nil {
		return d.fail(fmt.Errorf("%w: %v", ErrImageDecode, err))
	}
	if info == nil || info.Width() <= 0 || info.Height() <= 0 {
		return d.fail(fmt.Errorf("%w: image reports no dimensions", ErrImageDecode))
	}

	w := o.Width
	if w == 0 {
		w = d.engine.ContentWidth()
	}
	h := o.Height
	if h == 0 {
		h = w * info.Height() / info.Width()
	}

	d.pdf.SetAlpha(1, "Normal")
	d.engine.PlaceImage(name, w, h, o.Top, o.Bottom)
	return d.checkRender()
}

// AddSpace advances the cursor vertically by height millimeters,
// breaking the current line first if needed. The cursor ends at the
// left margin. Overflow paginates like any other element.
func (d *Document) AddSpace(height float64) *Document {
	if d.err != nil {
		return d
	}
	if height < 0 || math.IsNaN(height) {
		return d.fail(fmt.Errorf("%w: space height must be non-negative, got %v",
			ErrInvalidOption, height))
	}
	d.engine.Space(height)
	return d.checkRender()
}

// SetMetadata sets the document title, author, and subject.
func (d *Document) SetMetadata(title, author, subject string) *Document {
	if d.err != nil {
		return d
	}
	d.pdf.SetTitle(title, true)
	d.pdf.SetAuthor(author, true)
	d.pdf.SetSubject(subject, true)
	return d
}

// SetKeywords sets the document keywords for search and indexing.
func (d *Document) SetKeywords(keywords ...string) *Document {
	if d.err != nil {
		return d
	}
	d.pdf.SetKeywords(strings.Join(keywords, ", "), true)
	return d
}

// EnablePageNumbers stamps "page / total" centered inside the bottom
// padding of every page when the document is written out.
func (d *Document) EnablePageNumbers() *Document {
	d.pageNumbers = true
	return d
}

// Err returns the first error recorded by any operation, or nil.
// Once an error is recorded, content-adding methods are no-ops and
// the output methods return the same error.
func (d *Document) Err() error {
	return d.err
}

// PageIndex returns the 1-based index of the page the cursor is on.
func (d *Document) PageIndex() int {
	return d.engine.State().Page
}

// PageCount returns the number of pages written so far.
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// Cursor returns the write cursor position in millimeters.
func (d *Document) Cursor() (x, y float64) {
	st := d.engine.State()
	return st.X, st.Y
}

// Save finalizes the document and writes it to path.
//
// After Save the document cannot be modified.
func (d *Document) Save(path string) error {
	if err := d.finalize(); err != nil {
		return err
	}
	if err := d.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// WriteTo finalizes the document and writes it to w, implementing
// io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	if err := d.finalize(); err != nil {
		return 0, err
	}
	cw := &countingWriter{w: w}
	if err := d.pdf.Output(cw); err != nil {
		return cw.n, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return cw.n, nil
}

// Bytes finalizes the document and returns its serialized form.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// finalize runs the deferred page-number pass and reports any sticky
// error.
func (d *Document) finalize() error {
	if d.err != nil {
		return d.err
	}
	if d.pageNumbers {
		d.applyTextStyle(9, d.opts.Color)
		d.engine.StampPageFooters(func(page, total int) string {
			return fmt.Sprintf("%d / %d", page, total)
		})
		if d.checkRender(); d.err != nil {
			return d.err
		}
	}
	return nil
}

// applyTextStyle configures fpdf's text state for the next engine
// call.
func (d *Document) applyTextStyle(size float64, color Color) {
	d.pdf.SetFontSize(size)
	d.pdf.SetTextColor(color.R, color.G, color.B)
	d.pdf.SetAlpha(color.alpha(), "Normal")
}

// fail records the first error. The failing call must not have
// mutated layout state.
func (d *Document) fail(err error) *Document {
	if d.err == nil {
		d.err = err
	}
	return d
}

// checkRender promotes a sticky fpdf error to the document error.
func (d *Document) checkRender() *Document {
	if d.err != nil {
		return d
	}
	if err := d.pdf.Error(); err != nil {
		d.err = fmt.Errorf("%w: %v", ErrRender, err)
	}
	return d
}

// sniffImageFormat maps detected image content types to the format
// names the underlying library understands.
func sniffImageFormat(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/png":
		return "PNG"
	case "image/jpeg":
		return "JPG"
	case "image/gif":
		return "GIF"
	default:
		return ""
	}
}

// countingWriter counts bytes for WriteTo.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
