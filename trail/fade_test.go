package trail

import "testing"

var allShapes = []Shape{ShapeLinear, ShapeSmooth, ShapeQuad, ShapeCubic}

func TestFadeEndpoints(t *testing.T) {
	for _, sh := range allShapes {
		f := Fade{Size: sh, Alpha: sh}

		size, alpha := f.Eval(0)
		if size != 1 || alpha != 1 {
			t.Errorf("%v: Eval(0) = (%v, %v), want (1, 1)", sh, size, alpha)
		}

		size, alpha = f.Eval(1)
		if size != 0 || alpha != 0 {
			t.Errorf("%v: Eval(1) = (%v, %v), want (0, 0)", sh, size, alpha)
		}
	}
}

func TestFadeMonotoneNonIncreasing(t *testing.T) {
	const steps = 1000
	for _, sh := range allShapes {
		f := Fade{Size: sh, Alpha: sh}

		prevSize, prevAlpha := f.Eval(0)
		for i := 1; i <= steps; i++ {
			u := float32(i) / steps
			size, alpha := f.Eval(u)
			if size > prevSize {
				t.Fatalf("%v: size rises at u=%v: %v -> %v", sh, u, prevSize, size)
			}
			if alpha > prevAlpha {
				t.Fatalf("%v: alpha rises at u=%v: %v -> %v", sh, u, prevAlpha, alpha)
			}
			if size > 1 || size < 0 || alpha > 1 || alpha < 0 {
				t.Fatalf("%v: Eval(%v) = (%v, %v) outside [0,1]", sh, u, size, alpha)
			}
			prevSize, prevAlpha = size, alpha
		}
	}
}

func TestFadeClampsInput(t *testing.T) {
	f := Fade{Size: ShapeLinear, Alpha: ShapeQuad}

	size, alpha := f.Eval(-0.5)
	if size != 1 || alpha != 1 {
		t.Errorf("Eval(-0.5) = (%v, %v), want clamped (1, 1)", size, alpha)
	}
	size, alpha = f.Eval(1.5)
	if size != 0 || alpha != 0 {
		t.Errorf("Eval(1.5) = (%v, %v), want clamped (0, 0)", size, alpha)
	}
}

func TestFadeIndependentChannels(t *testing.T) {
	f := Fade{Size: ShapeLinear, Alpha: ShapeCubic}

	size, alpha := f.Eval(0.5)
	if size != 0.5 {
		t.Errorf("linear size at 0.5 = %v, want 0.5", size)
	}
	if alpha != 0.125 {
		t.Errorf("cubic alpha at 0.5 = %v, want 0.125", alpha)
	}
}

func TestFadePure(t *testing.T) {
	f := Fade{Size: ShapeSmooth, Alpha: ShapeSmooth}
	s1, a1 := f.Eval(0.37)
	for i := 0; i < 100; i++ {
		s, a := f.Eval(0.37)
		if s != s1 || a != a1 {
			t.Fatalf("Eval not pure: (%v, %v) then (%v, %v)", s1, a1, s, a)
		}
	}
}

func TestShapeFromString(t *testing.T) {
	tests := []struct {
		name    string
		want    Shape
		wantErr bool
	}{
		{"linear", ShapeLinear, false},
		{"", ShapeLinear, false},
		{"smooth", ShapeSmooth, false},
		{"quad", ShapeQuad, false},
		{"cubic", ShapeCubic, false},
		{"bounce", ShapeLinear, true},
	}
	for _, tt := range tests {
		got, err := ShapeFromString(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ShapeFromString(%q) err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ShapeFromString(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestShapeRoundTrip(t *testing.T) {
	for _, sh := range allShapes {
		got, err := ShapeFromString(sh.String())
		if err != nil || got != sh {
			t.Errorf("round trip %v -> %q -> %v (err %v)", sh, sh.String(), got, err)
		}
	}
}
