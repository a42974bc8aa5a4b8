package display

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Font point sizes for the three text sizes
var faceSizes = map[TextSize]float64{
	TextSmall:  9,
	TextMedium: 12,
	TextLarge:  22,
}

// Framebuffer is an off-screen monochrome drawing surface. It
// implements Surface; Present hands the composed frame to the
// configured Presenter.
type Framebuffer struct {
	width     int
	height    int
	img       *image1bit.VerticalLSB
	faces     map[TextSize]font.Face
	presenter Presenter
}

// NewFramebuffer creates a framebuffer of the given dimensions
func NewFramebuffer(width, height int, p Presenter) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", width, height)
	}
	if p == nil {
		p = NopPresenter{}
	}

	ft, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	faces := make(map[TextSize]font.Face, len(faceSizes))
	for size, points := range faceSizes {
		faces[size] = truetype.NewFace(ft, &truetype.Options{
			Size: points,
			DPI:  72,
		})
	}

	return &Framebuffer{
		width:     width,
		height:    height,
		img:       image1bit.NewVerticalLSB(image.Rect(0, 0, width, height)),
		faces:     faces,
		presenter: p,
	}, nil
}

// Clear blanks the frame buffer
func (f *Framebuffer) Clear() {
	draw.Draw(f.img, f.img.Bounds(), &image.Uniform{image1bit.Off}, image.Point{}, draw.Src)
}

// DrawText draws text with its baseline at (x, y)
func (f *Framebuffer) DrawText(x, y int, size TextSize, text string) {
	face, ok := f.faces[size]
	if !ok {
		face = f.faces[TextSmall]
	}
	d := font.Drawer{
		Dst:  f.img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// TextWidth returns the advance width of text in pixels
func (f *Framebuffer) TextWidth(size TextSize, text string) int {
	face, ok := f.faces[size]
	if !ok {
		face = f.faces[TextSmall]
	}
	return font.MeasureString(face, text).Ceil()
}

// DrawLine draws a one-pixel line from (x0, y0) to (x1, y1)
func (f *Framebuffer) DrawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		f.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect draws a filled or outlined rectangle
func (f *Framebuffer) DrawRect(x, y, w, h int, fill bool) {
	if w <= 0 || h <= 0 {
		return
	}
	if fill {
		for yy := y; yy < y+h; yy++ {
			for xx := x; xx < x+w; xx++ {
				f.setPixel(xx, yy)
			}
		}
		return
	}
	f.DrawLine(x, y, x+w-1, y)
	f.DrawLine(x, y+h-1, x+w-1, y+h-1)
	f.DrawLine(x, y, x, y+h-1)
	f.DrawLine(x+w-1, y, x+w-1, y+h-1)
}

// Size returns the surface dimensions in pixels
func (f *Framebuffer) Size() (int, int) {
	return f.width, f.height
}

// Present pushes the composed frame to the presenter
func (f *Framebuffer) Present() error {
	return f.presenter.Draw(f.img)
}

// Pixel reports whether the pixel at (x, y) is lit
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return false
	}
	return f.img.BitAt(x, y) == image1bit.On
}

func (f *Framebuffer) setPixel(x, y int) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.img.SetBit(x, y, image1bit.On)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
