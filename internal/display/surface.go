package display

import "image"

// TextSize selects one of the framebuffer's font faces
type TextSize int

const (
	// Available text sizes
	TextSmall TextSize = iota
	TextMedium
	TextLarge
)

// Surface represents a drawing surface for one monochrome frame.
// Drawing calls compose into an off-screen buffer; nothing reaches
// the panel until Present.
type Surface interface {
	// Clear blanks the frame buffer
	Clear()
	// DrawText draws text with its baseline at (x, y)
	DrawText(x, y int, size TextSize, text string)
	// TextWidth returns the advance width of text in pixels
	TextWidth(size TextSize, text string) int
	// DrawLine draws a one-pixel line from (x0, y0) to (x1, y1)
	DrawLine(x0, y0, x1, y1 int)
	// DrawRect draws a filled or outlined rectangle
	DrawRect(x, y, w, h int, fill bool)
	// Size returns the surface dimensions in pixels
	Size() (w, h int)
	// Present pushes the composed frame to the panel
	Present() error
}

// Presenter pushes a composed frame to a physical or virtual panel
type Presenter interface {
	Draw(img image.Image) error
}

// NopPresenter discards frames; used headless and in tests
type NopPresenter struct{}

func (NopPresenter) Draw(image.Image) error { return nil }
