// Package ingest turns user-provided image files into theme-aware icon
// asset data. Raster images are center-cropped square, scaled down and
// re-encoded as PNG, then classified as light or dark by perceived
// brightness so an inverted variant can cover the opposite theme.
// Vector images pass through untouched.
package ingest

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"

	"github.com/iconica/core/errors"
)

// Format classifies an upload.
type Format string

const (
	Vector Format = "vector"
	Raster Format = "raster"
)

// ClassifyFormat decides how to ingest a file. The declared MIME type is
// authoritative; the filename extension is only consulted when the MIME
// type is absent or unhelpful. Matching is case-insensitive.
func ClassifyFormat(name, mime string) Format {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/svg+xml":
		return Vector
	case "":
		// fall through to the extension
	default:
		return Raster
	}
	if strings.HasSuffix(strings.ToLower(name), ".svg") {
		return Vector
	}
	return Raster
}

// RasterResult is a processed light/dark PNG pair.
type RasterResult struct {
	// LightData renders against a light theme, DarkData against a dark
	// one. One of the two is the scaled original, the other its
	// inversion, chosen by brightness classification.
	LightData []byte
	DarkData  []byte

	LightDataURL string
	DarkDataURL  string
}

// VectorResult is a passthrough vector asset.
type VectorResult struct {
	Data    []byte
	DataURL string
}

// CropRect returns the centered square crop for a w×h source: the side
// is the shorter dimension and the longer one is trimmed evenly.
func CropRect(w, h int) image.Rectangle {
	side := w
	if h < w {
		side = h
	}
	x := (w - side) / 2
	y := (h - side) / 2
	return image.Rect(x, y, x+side, y+side)
}

// IngestRaster decodes, center-crops, scales to targetSize and encodes a
// light/dark PNG pair. Any stage failure surfaces as a single processing
// error; no partial output is returned.
func IngestRaster(data []byte, targetSize int) (*RasterResult, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.ProcessingFailed("decode image", err)
	}
	if targetSize <= 0 {
		targetSize = 64
	}

	b := src.Bounds()
	crop := CropRect(b.Dx(), b.Dy()).Add(b.Min)

	scaled := image.NewNRGBA(image.Rect(0, 0, targetSize, targetSize))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, crop, draw.Src, nil)

	native, err := encodePNG(scaled)
	if err != nil {
		return nil, errors.ProcessingFailed("encode image", err)
	}
	inverted, err := encodePNG(invert(scaled))
	if err != nil {
		return nil, errors.ProcessingFailed("encode inverted image", err)
	}

	res := &RasterResult{}
	if Brightness(scaled) < brightnessMidpoint {
		// Dark source serves the dark theme as-is; invert for light.
		res.DarkData, res.LightData = native, inverted
	} else {
		res.LightData, res.DarkData = native, inverted
	}
	res.LightDataURL = pngDataURL(res.LightData)
	res.DarkDataURL = pngDataURL(res.DarkData)
	return res, nil
}

// IngestVector passes vector bytes through unchanged; the data URL
// decodes back to the input byte for byte.
func IngestVector(data []byte) (*VectorResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.ProcessingFailed("empty vector file", nil)
	}
	return &VectorResult{
		Data:    data,
		DataURL: "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

const brightnessMidpoint = 128

// Brightness is the alpha-weighted perceived brightness of an image on
// the 0..255 scale, using the BT.601 luma weights. Fully transparent
// images count as bright, so their native bytes serve the light theme.
func Brightness(img image.Image) float64 {
	b := img.Bounds()
	var lumSum, alphaSum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, a := img.At(x, y).RGBA()
			// Premultiplied channels: luma scales with alpha, so the
			// ratio below yields the straight-alpha average.
			lumSum += 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bb)
			alphaSum += float64(a)
		}
	}
	if alphaSum == 0 {
		return 255
	}
	return lumSum / alphaSum * 255
}

func invert(src *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(src.Bounds())
	for y := src.Bounds().Min.Y; y < src.Bounds().Max.Y; y++ {
		for x := src.Bounds().Min.X; x < src.Bounds().Max.X; x++ {
			c := src.NRGBAAt(x, y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: 255 - c.R,
				G: 255 - c.G,
				B: 255 - c.B,
				A: c.A,
			})
		}
	}
	return out
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pngDataURL(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
