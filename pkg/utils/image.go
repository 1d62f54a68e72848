package utils

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// ScaleImage scales img by an integer factor, without smoothing.
func ScaleImage(img image.Image, scale int) image.Image {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SaveImage scales img and saves it to filename, encoded as PNG or BMP
// depending on the extension.
func SaveImage(filename string, img image.Image, scale int) error {
	img = ScaleImage(img, scale)

	var encode func(*os.File, image.Image) error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".png":
		encode = func(f *os.File, m image.Image) error { return png.Encode(f, m) }
	case ".bmp":
		encode = func(f *os.File, m image.Image) error { return bmp.Encode(f, m) }
	default:
		return fmt.Errorf("utils: unsupported image format %q", ext)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
