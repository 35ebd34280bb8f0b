package helix

import "testing"

// collectGlyphs packs the frame and returns the emitted glyphs and colors
// indexed by cell.
func collectGlyphs(f *Frame, mode GlyphMode, scheme Scheme) (map[[2]int]rune, map[[2]int]RGB) {
	glyphs := make(map[[2]int]rune)
	colors := make(map[[2]int]RGB)
	Pack(f, mode, scheme, func(col, row int, glyph rune, color RGB) {
		glyphs[[2]int{col, row}] = glyph
		colors[[2]int{col, row}] = color
	})
	return glyphs, colors
}

func TestGlyphModeDimensions(t *testing.T) {
	if ModeBraille.SubW() != 2 || ModeBraille.SubH() != 4 {
		t.Errorf("braille cell = %dx%d, want 2x4", ModeBraille.SubW(), ModeBraille.SubH())
	}
	if ModeBlock.SubW() != 2 || ModeBlock.SubH() != 2 {
		t.Errorf("block cell = %dx%d, want 2x2", ModeBlock.SubW(), ModeBlock.SubH())
	}
	if ModeBraille.String() != "braille" || ModeBlock.String() != "block" {
		t.Error("mode names wrong")
	}
}

func TestPackEmptyFrameEmitsSpaces(t *testing.T) {
	f := NewFrame(4, 8)
	glyphs, colors := collectGlyphs(f, ModeBraille, Schemes[0])
	if len(glyphs) != 4 {
		t.Fatalf("emitted %d cells, want 4", len(glyphs))
	}
	for cell, g := range glyphs {
		if g != ' ' {
			t.Errorf("cell %v glyph %q, want space", cell, g)
		}
		if colors[cell] != ColorWhite {
			t.Errorf("cell %v color %v, want white", cell, colors[cell])
		}
	}
}

func TestPackBrailleBits(t *testing.T) {
	cases := []struct {
		name string
		x, y int
		want rune
	}{
		{"dot 1 top left", 0, 0, 0x2801},
		{"dot 4 top right", 1, 0, 0x2808},
		{"dot 3 bottom of left column", 0, 2, 0x2804},
		{"dot 7 left fourth row", 0, 3, 0x2840},
		{"dot 8 right fourth row", 1, 3, 0x2880},
	}
	for _, tc := range cases {
		f := NewFrame(2, 4)
		f.Plot(tc.x, tc.y, 1, 0)
		glyphs, _ := collectGlyphs(f, ModeBraille, Schemes[0])
		if g := glyphs[[2]int{0, 0}]; g != tc.want {
			t.Errorf("%s: glyph U+%04X, want U+%04X", tc.name, g, tc.want)
		}
	}
}

func TestPackBrailleFullCell(t *testing.T) {
	f := NewFrame(2, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			f.Plot(x, y, 1, 0.5)
		}
	}
	glyphs, _ := collectGlyphs(f, ModeBraille, Schemes[0])
	if g := glyphs[[2]int{0, 0}]; g != 0x28FF {
		t.Errorf("full cell glyph U+%04X, want U+28FF", g)
	}
}

func TestPackBlockRamp(t *testing.T) {
	want := []rune{' ', '░', '▒', '▓', '█'}
	for covered := 0; covered <= 4; covered++ {
		f := NewFrame(2, 2)
		n := 0
		for y := 0; y < 2 && n < covered; y++ {
			for x := 0; x < 2 && n < covered; x++ {
				f.Plot(x, y, 1, 0)
				n++
			}
		}
		glyphs, _ := collectGlyphs(f, ModeBlock, Schemes[0])
		if g := glyphs[[2]int{0, 0}]; g != want[covered] {
			t.Errorf("%d covered: glyph %q, want %q", covered, g, want[covered])
		}
	}
}

func TestPackColorAveraging(t *testing.T) {
	// A two-stop black-to-white ramp makes the expected average easy to
	// state exactly.
	scheme := Scheme{
		Name: "ramp",
		at: func(t float64) RGB {
			return RGB{}.Lerp(RGB{R: 255, G: 255, B: 255}, t)
		},
	}

	f := NewFrame(2, 4)
	f.Plot(0, 0, 1, 0) // black
	f.Plot(1, 0, 1, 1) // white
	_, colors := collectGlyphs(f, ModeBraille, scheme)

	got := colors[[2]int{0, 0}]
	want := RGB{R: 127, G: 127, B: 127}
	if got != want {
		t.Errorf("averaged color = %v, want %v", got, want)
	}
}

func TestPackSingleSubCellColor(t *testing.T) {
	f := NewFrame(2, 4)
	f.Plot(0, 1, 1, 0.25)
	scheme := Schemes[0]
	_, colors := collectGlyphs(f, ModeBraille, scheme)
	if got, want := colors[[2]int{0, 0}], scheme.At(0.25); got != want {
		t.Errorf("color = %v, want the scheme color %v", got, want)
	}
}

func TestPackCellGrid(t *testing.T) {
	f := NewFrame(6, 8) // 3x2 braille cells
	f.Plot(4, 7, 1, 0)  // bottom-right cell, local (0, 3): dot 7
	glyphs, _ := collectGlyphs(f, ModeBraille, Schemes[0])
	if len(glyphs) != 6 {
		t.Fatalf("emitted %d cells, want 6", len(glyphs))
	}
	if g := glyphs[[2]int{2, 1}]; g != 0x2840 {
		t.Errorf("cell (2, 1) glyph U+%04X, want U+2840", g)
	}
	if g := glyphs[[2]int{0, 0}]; g != ' ' {
		t.Errorf("cell (0, 0) glyph %q, want space", g)
	}
}

func TestPackZeroSizeFrame(t *testing.T) {
	f := NewFrame(0, 0)
	called := false
	Pack(f, ModeBraille, Schemes[0], func(int, int, rune, RGB) { called = true })
	if called {
		t.Error("emit called for an empty frame")
	}
}
