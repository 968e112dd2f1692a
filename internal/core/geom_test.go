package core

import "testing"

func TestRectFOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		expected bool
	}{
		{"overlapping", RectF{0, 0, 40, 40}, RectF{30, 30, 50, 50}, true},
		{"touching right edge", RectF{0, 0, 40, 40}, RectF{40, 0, 50, 50}, false},
		{"touching bottom edge", RectF{0, 0, 40, 40}, RectF{0, 40, 50, 50}, false},
		{"fractional overlap", RectF{0, 0, 40, 40}, RectF{39.5, 39.5, 50, 50}, true},
		{"full-width band", RectF{320, 100, 40, 40}, RectF{0, 120, 1280, 40}, true},
		{"above", RectF{320, 0, 40, 40}, RectF{300, 41, 50, 50}, false},
		{"contained", RectF{0, 0, 100, 100}, RectF{10, 10, 5, 5}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectFEdges(t *testing.T) {
	r := RectF{X: 1.5, Y: 2, W: 10, H: 4.5}
	if r.Right() != 11.5 {
		t.Errorf("Right() = %f, expected 11.5", r.Right())
	}
	if r.Bottom() != 6.5 {
		t.Errorf("Bottom() = %f, expected 6.5", r.Bottom())
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name  string
		want  Color
		valid bool
	}{
		{"red", ColorRed, true},
		{" Green ", ColorGreen, true},
		{"purple", ColorMagenta, true},
		{"violet", ColorBrightMagenta, true},
		{"chartreuse", ColorDefault, false},
	}

	for _, tc := range tests {
		got, ok := ParseColor(tc.name)
		if got != tc.want || ok != tc.valid {
			t.Errorf("ParseColor(%q) = %v, %v; expected %v, %v", tc.name, got, ok, tc.want, tc.valid)
		}
	}
}
