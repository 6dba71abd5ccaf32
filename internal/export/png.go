package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// EncodePNG writes img to w with default compression.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WritePNG creates or truncates path. The parent directory must exist.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Thumbnail scales img so its longer side is maxDim, keeping the aspect
// ratio. Images already within maxDim are copied unscaled.
func Thumbnail(img image.Image, maxDim int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim > 0 && (w > maxDim || h > maxDim) {
		if w >= h {
			w, h = maxDim, max(1, h*maxDim/w)
		} else {
			w, h = max(1, w*maxDim/h), maxDim
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Caption stamps text onto the bottom-left corner of img.
func Caption(img draw.Image, text string, c color.Color) {
	face := basicfont.Face7x13
	b := img.Bounds()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(b.Min.X+6, b.Max.Y-face.Descent-4),
	}
	d.DrawString(text)
}
