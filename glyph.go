package helix

// GlyphMode selects how sub-cells pack into terminal glyphs.
type GlyphMode uint8

const (
	// ModeBraille packs 2x4 sub-cells per character into Braille patterns.
	ModeBraille GlyphMode = iota
	// ModeBlock packs 2x2 sub-cells per character into a coverage-density
	// ramp of block characters, trading resolution for a bolder look.
	ModeBlock
)

// String returns the mode name as shown in the status bar.
func (m GlyphMode) String() string {
	if m == ModeBlock {
		return "block"
	}
	return "braille"
}

// SubW returns the horizontal sub-cells per character cell.
func (m GlyphMode) SubW() int { return 2 }

// SubH returns the vertical sub-cells per character cell.
func (m GlyphMode) SubH() int {
	if m == ModeBlock {
		return 2
	}
	return 4
}

// brailleBit maps a (row, col) position inside the 2x4 cell to its bit in
// the Braille pattern block (U+2800..U+28FF): dots 1-3 and 7 fill the left
// column top to bottom, dots 4-6 and 8 the right column.
var brailleBit = [4][2]uint16{
	{1 << 0, 1 << 3},
	{1 << 1, 1 << 4},
	{1 << 2, 1 << 5},
	{1 << 6, 1 << 7},
}

// blockRamp orders block characters by coverage density for the 2x2 mode:
// 0 of 4 sub-cells covered up to all 4.
var blockRamp = [5]rune{' ', '░', '▒', '▓', '█'}

// Pack converts the sub-cell frame into character cells and invokes emit
// for every cell in row-major order. Each emitted color is the average of
// the scheme colors of the cell's covered sub-cells; empty cells emit a
// space so stale glyphs from the previous frame are overwritten.
func Pack(f *Frame, mode GlyphMode, scheme Scheme, emit func(col, row int, glyph rune, color RGB)) {
	subW, subH := mode.SubW(), mode.SubH()
	if f.W == 0 || f.H == 0 {
		return
	}
	cols := f.W / subW
	rows := f.H / subH

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			var bits uint16
			covered := 0
			var rSum, gSum, bSum int
			for sy := 0; sy < subH; sy++ {
				for sx := 0; sx < subW; sx++ {
					on, _, attr := f.At(col*subW+sx, row*subH+sy)
					if !on {
						continue
					}
					covered++
					bits |= brailleBit[sy][sx]
					c := scheme.At(attr)
					rSum += int(c.R)
					gSum += int(c.G)
					bSum += int(c.B)
				}
			}

			if covered == 0 {
				emit(col, row, ' ', ColorWhite)
				continue
			}

			color := RGB{
				R: uint8(rSum / covered),
				G: uint8(gSum / covered),
				B: uint8(bSum / covered),
			}

			var glyph rune
			if mode == ModeBlock {
				glyph = blockRamp[covered]
			} else {
				glyph = 0x2800 + rune(bits)
			}
			emit(col, row, glyph, color)
		}
	}
}
