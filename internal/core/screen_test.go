package core

import (
	"strings"
	"testing"
)

func TestScreenDrawing(t *testing.T) {
	tests := []struct {
		name string
		size [2]int
		draw func(s *Screen)
		want []string
	}{
		{
			name: "blank",
			size: [2]int{3, 2},
			draw: func(*Screen) {},
			want: []string{"   ", "   "},
		},
		{
			name: "set ignores out of bounds",
			size: [2]int{3, 2},
			draw: func(s *Screen) {
				s.Set(0, 0, 'a')
				s.Set(2, 1, 'b')
				s.Set(-1, 0, 'x')
				s.Set(3, 0, 'x')
				s.Set(0, 2, 'x')
			},
			want: []string{"a  ", "  b"},
		},
		{
			name: "text clips on both sides",
			size: [2]int{5, 1},
			draw: func(s *Screen) {
				s.DrawText(-2, 0, "abcdefgh")
			},
			want: []string{"cdefg"},
		},
		{
			name: "text counts runes not bytes",
			size: [2]int{4, 1},
			draw: func(s *Screen) {
				s.DrawText(0, 0, "█▀x")
			},
			want: []string{"█▀x "},
		},
		{
			name: "rect and hline",
			size: [2]int{5, 3},
			draw: func(s *Screen) {
				s.DrawRect(NewRect(1, 0, 2, 2), '#')
				s.DrawHLine(0, 2, 9, '-')
			},
			want: []string{" ##  ", " ##  ", "-----"},
		},
		{
			name: "box",
			size: [2]int{4, 3},
			draw: func(s *Screen) {
				s.DrawBox(NewRect(0, 0, 4, 3))
			},
			want: []string{"┌──┐", "│  │", "└──┘"},
		},
		{
			name: "fill then clear",
			size: [2]int{2, 2},
			draw: func(s *Screen) {
				s.Fill('.')
				s.Clear()
				s.Set(1, 1, 'z')
			},
			want: []string{"  ", " z"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(tc.size[0], tc.size[1])
			tc.draw(s)
			if got := s.String(); got != strings.Join(tc.want, "\n") {
				t.Errorf("screen:\n%s\nexpected:\n%s", got, strings.Join(tc.want, "\n"))
			}
		})
	}
}

func TestScreenDimensions(t *testing.T) {
	s := NewScreen(80, 24)
	if s.Width() != 80 || s.Height() != 24 {
		t.Errorf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	if got := s.Get(100, 100); got != ' ' {
		t.Errorf("out of bounds Get = %q, expected space", got)
	}
	if got := s.Row(-1); got != strings.Repeat(" ", 80) {
		t.Errorf("out of range Row should be blank, got %q", got)
	}
}

func TestScreenDrawMessageBox(t *testing.T) {
	s := NewScreen(20, 9)
	s.Fill('x')
	s.DrawMessageBox("PAUSED", "any key")

	// Box is 11x5 at (4, 2)
	if s.Get(4, 2) != '┌' || s.Get(14, 6) != '┘' {
		t.Errorf("box corners missing:\n%s", s.String())
	}
	if got := string([]rune(s.Row(3))[6:12]); got != "PAUSED" {
		t.Errorf("title row = %q, expected PAUSED", got)
	}
	if got := string([]rune(s.Row(5))[6:13]); got != "any key" {
		t.Errorf("subtitle row = %q, expected \"any key\"", got)
	}
	if s.Get(5, 4) != ' ' {
		t.Error("box interior should be blanked")
	}
	if s.Get(0, 0) != 'x' {
		t.Error("outside the box should be untouched")
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawTextColored(0, 0, "Color", ColorGreen)
	s.Set(5, 2, '!')

	s.Resize(3, 2)
	if s.String() != "Col\n   " {
		t.Errorf("after shrink:\n%s", s.String())
	}
	if s.GetCell(1, 0).Color != ColorGreen {
		t.Error("resize should keep cell colors")
	}

	s.Resize(8, 4)
	if got := s.Row(0); got != "Col     " {
		t.Errorf("after grow row 0 = %q", got)
	}
	if s.Get(5, 2) != ' ' {
		t.Error("content cut by the shrink must not come back")
	}

	// Same size is a no-op
	s.Set(7, 3, '#')
	s.Resize(8, 4)
	if s.Get(7, 3) != '#' {
		t.Error("resize to the same size should keep everything")
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextColored(1, 1, "RGB", ColorRed)
	s.DrawRectColored(NewRect(5, 0, 2, 2), '█', ColorBlue)

	cell := s.GetCell(2, 1)
	if cell.Rune != 'G' || cell.Color != ColorRed {
		t.Errorf("GetCell(2, 1) = %+v, expected G in red", cell)
	}
	if got := s.GetCell(6, 1); got.Color != ColorBlue || got.Rune != '█' {
		t.Errorf("GetCell(6, 1) = %+v, expected blue block", got)
	}

	// Plain Set resets color
	s.Set(2, 1, 'x')
	if s.GetCell(2, 1).Color != ColorDefault {
		t.Error("Set should write an uncolored cell")
	}

	// Out of bounds cell is a plain space
	if oob := s.GetCell(-1, 0); oob.Rune != ' ' || oob.Color != ColorDefault {
		t.Errorf("out of bounds GetCell = %+v, expected plain space", oob)
	}

	s.Clear()
	if s.GetCell(6, 1).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}
