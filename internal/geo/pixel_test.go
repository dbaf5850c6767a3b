package geo

import (
	"math"
	"testing"
)

func TestPixel_Dist(t *testing.T) {
	a := Pixel{X: 0, Y: 0}
	b := Pixel{X: 3, Y: 4}
	if d := a.Dist(b); math.Abs(d-5) > 1e-9 {
		t.Errorf("expected 5, got %f", d)
	}
}

func TestPixel_RotateAround_Identity(t *testing.T) {
	p := Pixel{X: 10, Y: 20}
	c := Pixel{X: 4, Y: 4}
	got := p.RotateAround(c, 0)
	if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
		t.Errorf("identity rotation moved the point: %+v", got)
	}
}

func TestPixel_RotateAround_Quarter(t *testing.T) {
	p := Pixel{X: 10, Y: 0}
	c := Pixel{X: 0, Y: 0}
	got := p.RotateAround(c, 90)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-10) > 1e-9 {
		t.Errorf("expected (0, 10), got %+v", got)
	}
}

func TestPixel_RotateAround_Inverse(t *testing.T) {
	p := Pixel{X: 17, Y: -3}
	c := Pixel{X: 5, Y: 9}
	got := p.RotateAround(c, 37).RotateAround(c, -37)
	if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
		t.Errorf("rotate/unrotate drifted: %+v", got)
	}
}

func TestAngleDeg(t *testing.T) {
	c := Pixel{X: 0, Y: 0}
	cases := []struct {
		p    Pixel
		want float64
	}{
		{Pixel{X: 1, Y: 0}, 0},
		{Pixel{X: 0, Y: 1}, 90},
		{Pixel{X: -1, Y: 0}, 180},
		{Pixel{X: 0, Y: -1}, -90},
	}
	for _, tc := range cases {
		if got := AngleDeg(c, tc.p); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("AngleDeg(%+v) = %f, want %f", tc.p, got, tc.want)
		}
	}
}
