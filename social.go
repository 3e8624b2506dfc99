package folioedge

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

const socialJPEGQuality = 85

// GenerateSocialAssets renders every social card asset the image selector
// references from a single source image: one file per platform at that
// platform's exact dimensions, plus the generic og.jpg fallback. Running
// this keeps the selector's width/height invariant true by construction —
// platforms lay previews out from the declared dimensions without measuring
// the asset.
func GenerateSocialAssets(srcPath, outDir string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode source image: %w", err)
	}

	specs := make([]SocialImageSpec, 0, len(socialImages)+1)
	for _, spec := range socialImages {
		specs = append(specs, spec)
	}
	specs = append(specs, fallbackImage)

	for _, spec := range specs {
		card := renderCard(src, spec.Width, spec.Height)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, card, &jpeg.Options{Quality: socialJPEGQuality}); err != nil {
			return fmt.Errorf("encode %s: %w", spec.Path, err)
		}

		outPath := filepath.Join(outDir, filepath.FromSlash(spec.Path))
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return fmt.Errorf("create output dir for %s: %w", spec.Path, err)
		}
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", spec.Path, err)
		}
	}
	return nil
}

// renderCard center-crops src to the target aspect ratio and scales it to
// exactly w x h.
func renderCard(src image.Image, w, h int) *image.RGBA {
	crop := centerCrop(src.Bounds(), w, h)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Over, nil)
	return dst
}

// centerCrop returns the largest centered sub-rectangle of bounds matching
// the w:h aspect ratio.
func centerCrop(bounds image.Rectangle, w, h int) image.Rectangle {
	sw, sh := bounds.Dx(), bounds.Dy()

	cw, ch := sw, sw*h/w
	if ch > sh {
		ch = sh
		cw = sh * w / h
	}

	x0 := bounds.Min.X + (sw-cw)/2
	y0 := bounds.Min.Y + (sh-ch)/2
	return image.Rect(x0, y0, x0+cw, y0+ch)
}
