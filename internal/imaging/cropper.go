package imaging

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Cropper holds a loaded source image plus a crop rectangle expressed in
// preview-pixel coordinates. The region starts as the widest 16:9 rectangle
// that fits the preview; the ratio is a hint only, never enforced while the
// user moves or resizes it.
type Cropper struct {
	src     image.Image
	preview image.Point // displayed size, in preview pixels
	region  image.Rectangle
}

// NewCropper wraps src displayed at the given preview size.
func NewCropper(src image.Image, preview image.Point) *Cropper {
	c := &Cropper{src: src, preview: preview}
	c.region = initialRegion(preview)
	return c
}

// initialRegion is the widest centered 16:9 rectangle inside the preview.
func initialRegion(p image.Point) image.Rectangle {
	w := p.X
	h := w * 9 / 16
	if h > p.Y {
		h = p.Y
		w = h * 16 / 9
	}
	x := (p.X - w) / 2
	y := (p.Y - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

func (c *Cropper) Region() image.Rectangle { return c.region }

// SetRegion replaces the crop rectangle verbatim. Degenerate rectangles are
// allowed here; Crop rejects them.
func (c *Cropper) SetRegion(r image.Rectangle) { c.region = r }

// MoveBy shifts the region, keeping it inside the preview.
func (c *Cropper) MoveBy(dx, dy int) {
	r := c.region.Add(image.Pt(dx, dy))
	if r.Min.X < 0 {
		r = r.Add(image.Pt(-r.Min.X, 0))
	}
	if r.Min.Y < 0 {
		r = r.Add(image.Pt(0, -r.Min.Y))
	}
	if r.Max.X > c.preview.X {
		r = r.Add(image.Pt(c.preview.X-r.Max.X, 0))
	}
	if r.Max.Y > c.preview.Y {
		r = r.Add(image.Pt(0, c.preview.Y-r.Max.Y))
	}
	c.region = r
}

// ResizeBy grows or shrinks the region around its top-left corner, clamped
// to the preview bounds. Shrinking below 1x1 is allowed to stop at 1.
func (c *Cropper) ResizeBy(dw, dh int) {
	r := c.region
	r.Max.X += dw
	r.Max.Y += dh
	if r.Max.X <= r.Min.X {
		r.Max.X = r.Min.X + 1
	}
	if r.Max.Y <= r.Min.Y {
		r.Max.Y = r.Min.Y + 1
	}
	if r.Max.X > c.preview.X {
		r.Max.X = c.preview.X
	}
	if r.Max.Y > c.preview.Y {
		r.Max.Y = c.preview.Y
	}
	c.region = r
}

// Crop maps the region from preview-pixel space to source-pixel space by
// the ratio naturalSize/displayedSize on each axis, copies that part of the
// source out, and returns it as a base64 JPEG data URI.
func (c *Cropper) Crop() (string, error) {
	if c.src == nil {
		return "", ErrNoImage
	}
	if c.region.Dx() == 0 || c.region.Dy() == 0 {
		return "", ErrEmptyRegion
	}
	sb := c.src.Bounds()
	if sb.Dx() < MinWidth || sb.Dy() < MinHeight {
		return "", ErrImageTooSmall
	}

	scaleX := float64(sb.Dx()) / float64(c.preview.X)
	scaleY := float64(sb.Dy()) / float64(c.preview.Y)
	srcRect := image.Rect(
		sb.Min.X+int(float64(c.region.Min.X)*scaleX),
		sb.Min.Y+int(float64(c.region.Min.Y)*scaleY),
		sb.Min.X+int(float64(c.region.Max.X)*scaleX),
		sb.Min.Y+int(float64(c.region.Max.Y)*scaleY),
	).Intersect(sb)
	if srcRect.Empty() {
		return "", ErrEmptyRegion
	}

	out := image.NewRGBA(image.Rect(0, 0, srcRect.Dx(), srcRect.Dy()))
	draw.Draw(out, out.Bounds(), c.src, srcRect.Min, draw.Src)
	return EncodeJPEG(out)
}

// PreviewImage renders the source scaled down to the preview size with the
// crop rectangle outlined, ready for terminal cell rendering.
func (c *Cropper) PreviewImage() *image.RGBA {
	scaled := Scale(c.src, c.preview)
	outline(scaled, c.region, color.RGBA{R: 0xff, A: 0xff})
	return scaled
}

// Scale resamples img to the given size with nearest-neighbor.
func Scale(img image.Image, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func outline(img *image.RGBA, r image.Rectangle, col color.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, col)
		img.Set(x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, col)
		img.Set(r.Max.X-1, y, col)
	}
}
