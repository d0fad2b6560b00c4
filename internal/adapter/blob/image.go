package blob

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // registered decoders
	"image/jpeg"
	"image/png"
	"math"

	"github.com/couchcryptid/field-survey-reports/internal/layout"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	jpegQuality = 85
	// maxPixels bounds the decoded size of an image, checked from its header.
	maxPixels = 64 << 20
	// pngInterlaceOffset is the IHDR interlace method byte: 8 signature
	// bytes, chunk length and type, then 12 bytes of IHDR fields.
	pngInterlaceOffset = 28
)

// normalize returns data as a JPEG or PNG no larger than maxDim on its long
// side. JPEG and non-interlaced PNG files that already fit are returned
// untouched; the boolean reports whether the image was re-encoded.
func normalize(data []byte, maxDim int) (layout.ImageData, bool, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return layout.ImageData{}, false, fmt.Errorf("decode image: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return layout.ImageData{}, false, fmt.Errorf("%dx%d %s image: %w", cfg.Width, cfg.Height, format, errTooLarge)
	}
	fits := maxDim <= 0 || (cfg.Width <= maxDim && cfg.Height <= maxDim)
	switch {
	case format == "jpeg" && fits:
		return layout.ImageData{Data: data, Format: "JPEG"}, false, nil
	case format == "png" && fits && !interlacedPNG(data):
		return layout.ImageData{Data: data, Format: "PNG"}, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return layout.ImageData{}, false, fmt.Errorf("decode %s image: %w", format, err)
	}
	if !fits {
		img = scaleToFit(img, maxDim)
	}

	var buf bytes.Buffer
	if format == "png" {
		if err := png.Encode(&buf, img); err != nil {
			return layout.ImageData{}, false, fmt.Errorf("encode png: %w", err)
		}
		return layout.ImageData{Data: buf.Bytes(), Format: "PNG"}, true, nil
	}
	if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return layout.ImageData{}, false, fmt.Errorf("encode jpeg: %w", err)
	}
	return layout.ImageData{Data: buf.Bytes(), Format: "JPEG"}, true, nil
}

// interlacedPNG reports whether a PNG uses Adam7 interlacing, which the PDF
// encoder cannot embed. png.Encode never interlaces.
func interlacedPNG(data []byte) bool {
	return len(data) > pngInterlaceOffset && data[pngInterlaceOffset] != 0
}

// scaleToFit resizes src so its long side is maxDim, keeping the aspect ratio.
func scaleToFit(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	ratio := float64(maxDim) / float64(max(b.Dx(), b.Dy()))
	w := max(1, int(math.Round(float64(b.Dx())*ratio)))
	h := max(1, int(math.Round(float64(b.Dy())*ratio)))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// flatten draws img over a white background; JPEG has no alpha channel.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
