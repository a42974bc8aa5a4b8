package display

import (
	"fmt"
	"image"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// logoSVG is the boot-screen logo: a radio tower with two arcs.
const logoSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
  <path d="M12 4 L9 20 L11 20 L12 14 L13 20 L15 20 Z" fill="#fff"/>
  <circle cx="12" cy="4" r="2" fill="#fff"/>
  <path d="M6 8 A8 8 0 0 1 8 5" stroke="#fff" stroke-width="1.5" fill="none"/>
  <path d="M18 8 A8 8 0 0 0 16 5" stroke="#fff" stroke-width="1.5" fill="none"/>
</svg>`

// DrawLogo rasterizes the logo into the frame buffer at (x, y) with
// the given size in pixels.
func (f *Framebuffer) DrawLogo(x, y, w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid logo size: %dx%d", w, h)
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(logoSVG))
	if err != nil {
		return fmt.Errorf("failed to parse logo: %v", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	// Threshold-blit into the monochrome buffer.
	for yy := 0; yy < h; yy++ {
		for xx := 0; xx < w; xx++ {
			r, g, b, a := rgba.At(xx, yy).RGBA()
			if a > 0x7fff && (r+g+b)/3 > 0x7fff {
				f.setPixel(x+xx, y+yy)
			}
		}
	}
	return nil
}
