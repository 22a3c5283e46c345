package pdfflow

import (
	"fmt"
	"math"
	"strings"
)

// Color is an RGB color with 8-bit components and an optional alpha.
//
// A is the opacity in (0, 1]. As a convenience the zero value is
// treated as fully opaque, so composite literals like
// Color{R: 200, G: 30, B: 30} work without spelling out the alpha.
//
// Example:
//
//	black := pdfflow.Color{}
//	red := pdfflow.NewColor(255, 0, 0)
//	watermark := pdfflow.NewColorAlpha(0, 0, 0, 0.2)
type Color struct {
	R int
	G int
	B int
	A float64
}

// NewColor creates an opaque color.
func NewColor(r, g, b int) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// NewColorAlpha creates a color with the given opacity in (0, 1].
func NewColorAlpha(r, g, b int, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// alpha returns the effective opacity, mapping the zero value to 1.
func (c Color) alpha() float64 {
	if c.A == 0 {
		return 1
	}
	return c.A
}

// validate checks component ranges.
func (c Color) validate() error {
	if c.R < 0 || c.R > 255 || c.G < 0 || c.G > 255 || c.B < 0 || c.B > 255 {
		return fmt.Errorf("%w: color components must be in [0, 255], got (%d, %d, %d)",
			ErrInvalidOption, c.R, c.G, c.B)
	}
	if c.A < 0 || c.A > 1 || math.IsNaN(c.A) {
		return fmt.Errorf("%w: color alpha must be in [0, 1], got %v", ErrInvalidOption, c.A)
	}
	return nil
}

// Construction defaults.
const (
	DefaultSize        = "A4"
	DefaultFontName    = "Helvetica"
	DefaultFontSize    = 14
	DefaultPagePadding = 10 // mm, both axes
)

// coreFonts are the font families built into the underlying PDF
// library; no embedding is required for these.
var coreFonts = map[string]bool{
	"helvetica":    true,
	"arial":        true,
	"times":        true,
	"courier":      true,
	"symbol":       true,
	"zapfdingbats": true,
}

// Options configures a new Document. The zero value selects A4,
// Helvetica 14 pt, 10 mm padding on both axes, and black text.
type Options struct {
	// Size names the paper format (see PaperSizeByName).
	Size string

	// FontName is the default font family. It must be one of the
	// built-in families (Helvetica, Arial, Times, Courier, Symbol,
	// ZapfDingbats).
	FontName string

	// FontSize is the default font size in points.
	FontSize float64

	// PagePaddingX and PagePaddingY are the content insets from the
	// page edges, in millimeters.
	PagePaddingX float64
	PagePaddingY float64

	// Color is the default text and rule color.
	Color Color
}

// applyDefaults fills zero-valued fields.
func (o *Options) applyDefaults() {
	if o.Size == "" {
		o.Size = DefaultSize
	}
	if o.FontName == "" {
		o.FontName = DefaultFontName
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.PagePaddingX == 0 {
		o.PagePaddingX = DefaultPagePadding
	}
	if o.PagePaddingY == 0 {
		o.PagePaddingY = DefaultPagePadding
	}
}

// validate checks the resolved construction options.
func (o *Options) validate() error {
	ps, ok := PaperSizeByName(o.Size)
	if !ok {
		return fmt.Errorf("%w: unknown paper size %q", ErrInvalidOption, o.Size)
	}
	if !coreFonts[strings.ToLower(o.FontName)] {
		return fmt.Errorf("%w: unknown font %q", ErrInvalidOption, o.FontName)
	}
	if o.FontSize <= 0 || math.IsNaN(o.FontSize) {
		return fmt.Errorf("%w: font size must be positive, got %v", ErrInvalidOption, o.FontSize)
	}
	if o.PagePaddingX < 0 || o.PagePaddingY < 0 ||
		math.IsNaN(o.PagePaddingX) || math.IsNaN(o.PagePaddingY) {
		return fmt.Errorf("%w: page padding must be non-negative, got (%v, %v)",
			ErrInvalidOption, o.PagePaddingX, o.PagePaddingY)
	}
	if 2*o.PagePaddingX >= ps.Width || 2*o.PagePaddingY >= ps.Height {
		return fmt.Errorf("%w: page padding (%v, %v) leaves no content area on %s",
			ErrInvalidOption, o.PagePaddingX, o.PagePaddingY, ps.Name)
	}
	return o.Color.validate()
}

// TextOptions styles a single AddText or AddArticle call. Zero-valued
// fields fall back to the document defaults.
type TextOptions struct {
	// FontSize in points; 0 means the document default.
	FontSize float64

	// Color overrides the document text color when non-nil.
	Color *Color

	// Left is an inline inset before the text starts, in
	// millimeters from the current cursor position.
	Left float64

	// Right is space claimed after the text, before any following
	// inline content.
	Right float64

	// Article selects paragraph semantics: the text starts at the
	// left margin and always ends with a line break. AddArticle is
	// shorthand for setting this.
	Article bool
}

// validate checks a TextOptions value before any state changes.
func (o *TextOptions) validate() error {
	if o.FontSize < 0 || math.IsNaN(o.FontSize) {
		return fmt.Errorf("%w: font size must be positive, got %v", ErrInvalidOption, o.FontSize)
	}
	if o.Left < 0 || o.Right < 0 || math.IsNaN(o.Left) || math.IsNaN(o.Right) {
		return fmt.Errorf("%w: text margins must be non-negative, got (left=%v, right=%v)",
			ErrInvalidOption, o.Left, o.Right)
	}
	if o.Color != nil {
		return o.Color.validate()
	}
	return nil
}

// Horizontal rule defaults: a default AddLine advances the cursor by
// Top + Width + Bottom = 8.5 mm.
const (
	DefaultLineTop       = 4   // mm
	DefaultLineBottom    = 4   // mm
	DefaultLineThickness = 0.5 // mm
)

// LineOptions styles an AddLine call.
type LineOptions struct {
	// Top and Bottom are the vertical margins around the rule, in
	// millimeters.
	Top    float64
	Bottom float64

	// Width is the stroke thickness in millimeters; 0 means the
	// default (0.5 mm).
	Width float64

	// Color overrides the document color when non-nil.
	Color *Color
}

// DefaultLineOptions returns the options used when AddLine is called
// with nil.
func DefaultLineOptions() *LineOptions {
	return &LineOptions{
		Top:    DefaultLineTop,
		Bottom: DefaultLineBottom,
		Width:  DefaultLineThickness,
	}
}

// validate checks a LineOptions value before any state changes.
func (o *LineOptions) validate() error {
	if o.Top < 0 || o.Bottom < 0 || math.IsNaN(o.Top) || math.IsNaN(o.Bottom) {
		return fmt.Errorf("%w: line margins must be non-negative, got (top=%v, bottom=%v)",
			ErrInvalidOption, o.Top, o.Bottom)
	}
	if o.Width < 0 || math.IsNaN(o.Width) {
		return fmt.Errorf("%w: line width must be non-negative, got %v", ErrInvalidOption, o.Width)
	}
	if o.Color != nil {
		return o.Color.validate()
	}
	return nil
}

// ImageOptions styles an AddImage call.
type ImageOptions struct {
	// Top and Bottom are the vertical margins around the image, in
	// millimeters.
	Top    float64
	Bottom float64

	// Width is the rendered width in millimeters; 0 means the full
	// content width.
	Width float64

	// Height is the rendered height in millimeters; 0 derives the
	// height from the image's intrinsic aspect ratio.
	Height float64

	// Format names the image format ("PNG", "JPG", "JPEG", "GIF").
	// Empty means detect from the image bytes.
	Format string
}

// validate checks an ImageOptions value before any state changes.
func (o *ImageOptions) validate() error {
	if o.Top < 0 || o.Bottom < 0 || math.IsNaN(o.Top) || math.IsNaN(o.Bottom) {
		return fmt.Errorf("%w: image margins must be non-negative, got (top=%v, bottom=%v)",
			ErrInvalidOption, o.Top, o.Bottom)
	}
	if o.Width < 0 || o.Height < 0 || math.IsNaN(o.Width) || math.IsNaN(o.Height) {
		return fmt.Errorf("%w: image dimensions must be non-negative, got (%v × %v)",
			ErrInvalidOption, o.Width, o.Height)
	}
	return nil
}
