// Package layout implements the cursor-driven page layout engine.
//
// The engine owns the virtual write cursor: it decides where on the
// page the next element lands, when text wraps to a new line, and when
// content overflows to a new page. It performs no drawing itself;
// every visual operation is delegated to a Renderer at coordinates the
// engine computes.
//
// All positions and lengths are in millimeters. Font sizes are in
// points; the conversion to vertical space uses fixed empirical ratios
// (see LineHeightRatio and BaselineRatio), not font metrics.
package layout

import (
	"github.com/coregx/pdfflow/logging"
)

// Flow ratios relating a font size in points to vertical distances in
// millimeters. These are empirical values tuned for body text at
// common sizes; they are deliberately not derived from font metrics.
const (
	// LineHeightRatio is the vertical advance of one text line per
	// point of font size.
	LineHeightRatio = 0.55

	// BaselineRatio is the distance from the top of a text line to
	// its baseline per point of font size.
	BaselineRatio = 0.4
)

// Renderer is the narrow drawing surface the engine writes to.
//
// The production implementation adapts a PDF library; tests use an
// in-memory fake. Style state (font, size, colors, stroke width) is
// configured on the underlying library by the caller before invoking
// the engine, so the Renderer only exposes placement, measurement,
// and page management.
//
// Coordinates are absolute page coordinates in millimeters. DrawText
// receives the baseline position.
type Renderer interface {
	// DrawText draws a string with its baseline at (x, y).
	DrawText(x, y float64, text string)

	// DrawLine strokes a straight line from (x1, y1) to (x2, y2).
	DrawLine(x1, y1, x2, y2 float64)

	// DrawImage places a previously registered image into the given
	// rectangle.
	DrawImage(name string, x, y, w, h float64)

	// AddPage appends a new page and makes it current.
	AddPage()

	// SelectPage makes an existing page (1-based) current.
	SelectPage(index int)

	// TextWidth measures a string with the current font and size.
	TextWidth(text string) float64

	// SplitText splits a string into lines no wider than width.
	SplitText(text string, width float64) []string

	// PageSize reports the page dimensions.
	PageSize() (w, h float64)
}

// State is the complete layout state: the current page (1-based), the
// write cursor, and the height of the most recently written line.
//
// Every engine operation is a transition over this tuple plus draw
// calls on the Renderer. X is always within the horizontal content
// area; Y never exceeds the bottom content edge without a page break.
type State struct {
	Page           int
	X              float64
	Y              float64
	LastLineHeight float64
}

// TextStyle carries the per-call layout inputs for FlowText. Font,
// size, and color must already be set on the underlying renderer;
// Size is repeated here because the engine needs it for line-height
// and baseline math.
type TextStyle struct {
	// Size is the font size in points.
	Size float64

	// Left is an extra inset before the text starts, from the
	// current cursor position.
	Left float64

	// Right is extra space claimed after the text ends, before any
	// following inline content.
	Right float64

	// Article selects paragraph semantics: the text starts at the
	// left margin and a line break always follows it.
	Article bool
}

// Engine lays content out on pages through a Renderer.
//
// The zero value is not usable; construct with New. Engine is not
// safe for concurrent use.
type Engine struct {
	r     Renderer
	pageW float64
	pageH float64
	padX  float64
	padY  float64
	st    State
}

// New creates an engine writing to r with the given page padding.
//
// The renderer must already have its first page added; the cursor
// starts at the top-left corner of the content area on page 1.
func New(r Renderer, padX, padY float64) *Engine {
	w, h := r.PageSize()
	return &Engine{
		r:     r,
		pageW: w,
		pageH: h,
		padX:  padX,
		padY:  padY,
		st: State{
			Page: 1,
			X:    padX,
			Y:    padY,
		},
	}
}

// State returns a copy of the current layout state.
func (e *Engine) State() State {
	return e.st
}

// ContentWidth returns the usable width between the horizontal
// paddings.
func (e *Engine) ContentWidth() float64 {
	return e.pageW - 2*e.padX
}

// contentRight is the x coordinate of the right content edge.
func (e *Engine) contentRight() float64 {
	return e.pageW - e.padX
}

// contentBottom is the y coordinate of the bottom content edge.
func (e *Engine) contentBottom() float64 {
	return e.pageH - e.padY
}

// EnsureFits is the pagination guard. If height does not fit between
// the cursor and the bottom content edge, it appends a new page and
// resets the vertical cursor to the top padding. The horizontal
// cursor is never touched here.
//
// Returns true when a page break occurred.
func (e *Engine) EnsureFits(height float64) bool {
	if e.st.Y+height <= e.contentBottom() {
		return false
	}
	e.r.AddPage()
	e.st.Page++
	e.st.Y = e.padY
	logging.Logger().Debug("page break",
		"page", e.st.Page,
		"height", height)
	return true
}

// LineBreak moves the cursor to the left margin of the next line,
// advancing vertically by the height of the last written line.
func (e *Engine) LineBreak() {
	e.st.X = e.padX
	e.st.Y += e.st.LastLineHeight
}

// atMargin reports whether the cursor sits at the left content edge.
func (e *Engine) atMargin() bool {
	return e.st.X <= e.padX
}

// FlowText lays out a text block starting at the current cursor.
//
// In inline mode the first portion of the text continues on the
// current line after previously written content; the remainder wraps
// into full-width lines. In article mode the text always starts at
// the left margin and a line break follows it.
func (e *Engine) FlowText(text string, style TextStyle) {
	lineHeight := style.Size * LineHeightRatio
	baseline := style.Size * BaselineRatio

	if style.Article && !e.atMargin() {
		e.LineBreak()
	}

	startX := e.st.X + style.Left
	remain := e.contentRight() - startX

	first, rest := e.splitFirstLine(text, remain)

	// First line continues at the cursor, possibly on a fresh page.
	e.EnsureFits(lineHeight)
	e.r.DrawText(startX, e.st.Y+baseline, first)
	e.st.X = startX + e.r.TextWidth(first)

	if rest != "" {
		lines := e.r.SplitText(rest, e.ContentWidth())
		logging.Logger().Debug("text wrap",
			"lines", len(lines),
			"page", e.st.Page)
		for _, line := range lines {
			e.st.Y += lineHeight
			e.st.X = e.padX
			e.EnsureFits(lineHeight)
			e.r.DrawText(e.st.X, e.st.Y+baseline, line)
			e.st.X = e.padX + e.r.TextWidth(line)
		}
	}

	if style.Article {
		e.st.X = e.padX
		e.st.Y += lineHeight
	} else {
		e.st.X += style.Right
		if e.st.X > e.contentRight() {
			e.st.X = e.padX
			e.st.Y += lineHeight
		}
	}
	e.st.LastLineHeight = lineHeight
}

// splitFirstLine greedily consumes runes from text while the measured
// prefix still fits in the remaining width of the current line. When
// no width remains the fragment is empty and the entire text is
// returned as remainder, to be wrapped at full content width.
func (e *Engine) splitFirstLine(text string, remain float64) (first, rest string) {
	runes := []rune(text)
	n := 0
	for n < len(runes) {
		if e.r.TextWidth(string(runes[:n+1])) > remain {
			break
		}
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

// Rule draws a full-width horizontal line across the content area.
//
// top and bottom are the vertical margins around the line; thickness
// is the stroke width. The cursor ends at the left margin, below the
// rule and its bottom margin. Stroke color and width must already be
// set on the underlying renderer.
func (e *Engine) Rule(top, thickness, bottom float64) {
	if !e.atMargin() {
		e.LineBreak()
	}
	e.EnsureFits(top + thickness)
	y := e.st.Y + top
	e.r.DrawLine(e.padX, y, e.contentRight(), y)
	e.st.Y += top + thickness + bottom
	e.st.X = e.padX
}

// PlaceImage draws a registered image horizontally centered on the
// page. top and bottom are vertical margins around the image; w and h
// are the rendered dimensions. The cursor ends at the left margin,
// below the image and its bottom margin.
func (e *Engine) PlaceImage(name string, w, h, top, bottom float64) {
	if !e.atMargin() {
		e.LineBreak()
	}
	e.EnsureFits(top + h)
	x := (e.pageW - w) / 2
	e.r.DrawImage(name, x, e.st.Y+top, w, h)
	e.st.X = e.padX
	e.st.Y += top + h + bottom
}

// Space advances the vertical cursor by height, breaking the line
// first if needed. The cursor ends at the left margin.
func (e *Engine) Space(height float64) {
	if !e.atMargin() {
		e.LineBreak()
	}
	e.EnsureFits(height)
	e.st.Y += height
	e.st.X = e.padX
}

// StampPageFooters writes format(page, total) centered inside the
// bottom padding of every page written so far, then restores the
// current page. Footer font, size, and color must already be set on
// the underlying renderer.
func (e *Engine) StampPageFooters(format func(page, total int) string) {
	total := e.st.Page
	for p := 1; p <= total; p++ {
		e.r.SelectPage(p)
		text := format(p, total)
		x := (e.pageW - e.r.TextWidth(text)) / 2
		y := e.pageH - e.padY/2
		e.r.DrawText(x, y, text)
	}
	e.r.SelectPage(e.st.Page)
}
