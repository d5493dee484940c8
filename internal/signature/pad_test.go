package signature_test

import (
	"image/color"
	"strings"
	"testing"

	"inkform/internal/imaging"
	"inkform/internal/signature"
)

func TestPad_BlankEncodeStillEmitsImage(t *testing.T) {
	p := signature.NewPad()
	if !p.Empty() {
		t.Fatal("fresh pad should be empty")
	}

	uri, err := p.Encode()
	if err != nil {
		t.Fatalf("encode blank pad: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected encoding: %.40q", uri)
	}

	img, _, err := imaging.DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != signature.SurfaceWidth || b.Dy() != signature.SurfaceHeight {
		t.Fatalf("surface size: %v", b)
	}
	// A blank pad is an all-white canvas.
	if !isWhite(img.At(250, 125)) {
		t.Fatal("blank pad produced non-white pixels")
	}
}

func TestPad_StrokesRasterizeAsInk(t *testing.T) {
	p := signature.NewPad()
	p.Begin(signature.Point{X: 100, Y: 100})
	p.Extend(signature.Point{X: 200, Y: 150})
	p.End()

	if p.Empty() {
		t.Fatal("pad should not be empty after drawing")
	}
	uri, err := p.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, _, err := imaging.DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if isWhite(img.At(100, 100)) {
		t.Fatal("stroke start not inked")
	}
	if isWhite(img.At(150, 125)) {
		t.Fatal("stroke midpoint not inked")
	}
	if !isWhite(img.At(400, 30)) {
		t.Fatal("untouched area inked")
	}
}

func TestPad_ClearResetsToEmpty(t *testing.T) {
	p := signature.NewPad()
	p.Begin(signature.Point{X: 10, Y: 10})
	p.End()
	p.Clear()
	if !p.Empty() {
		t.Fatal("pad not empty after clear")
	}
}

func TestPad_ExtendWithoutBeginStartsStroke(t *testing.T) {
	p := signature.NewPad()
	p.Extend(signature.Point{X: 5, Y: 5})
	if p.Empty() {
		t.Fatal("extend without begin lost the point")
	}
}

func TestPad_PointsClampedToSurface(t *testing.T) {
	p := signature.NewPad()
	p.Begin(signature.Point{X: -50, Y: 9999})
	st := p.Strokes()
	pt := st[0][0]
	if pt.X != 0 || pt.Y != signature.SurfaceHeight-1 {
		t.Fatalf("point not clamped: %+v", pt)
	}
}

func TestRegister_LastWriterWins(t *testing.T) {
	var r signature.Register
	if r.Present() {
		t.Fatal("fresh register should be empty")
	}
	r.Set("data:image/png;base64,AAAA")
	r.Set("data:image/jpeg;base64,BBBB")
	if got := r.Value(); got != "data:image/jpeg;base64,BBBB" {
		t.Fatalf("register kept the wrong value: %q", got)
	}
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 240 && g>>8 > 240 && b>>8 > 240
}
