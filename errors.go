package pdfflow

import "errors"

// Sentinel errors. Wrapped errors produced by this package match one
// of these with errors.Is.
var (
	// ErrInvalidOption is returned when a style or construction
	// option is malformed: a color component outside [0, 255], an
	// alpha outside [0, 1], a negative or NaN dimension, a
	// non-positive font size, or an unknown paper size or font name.
	// Option validation happens before any cursor movement, so a
	// failed call leaves the document state untouched.
	ErrInvalidOption = errors.New("pdfflow: invalid option")

	// ErrImageDecode is returned when image data cannot be read,
	// registered, or measured, or when its format cannot be
	// determined.
	ErrImageDecode = errors.New("pdfflow: cannot decode image")

	// ErrRender is returned when the underlying PDF library rejects
	// a draw or output call.
	ErrRender = errors.New("pdfflow: render failed")
)
