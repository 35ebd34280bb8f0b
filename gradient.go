package helix

// Scheme is a named, pure color gradient: it maps a normalized scalar in
// [0, 1] to an RGB color. Schemes are stateless; switching the active
// scheme on a session changes only the next frame's color pass.
type Scheme struct {
	Name string
	at   func(t float64) RGB
}

// At returns the scheme color for t. Values outside [0, 1] are clamped.
func (s Scheme) At(t float64) RGB {
	return s.at(clamp01(t))
}

// Schemes lists every gradient in cycling order. Index 0 (coolwarm) is the
// default.
var Schemes = []Scheme{
	{"coolwarm", palette{
		{59, 76, 192}, {98, 130, 234}, {141, 176, 254}, {184, 208, 249},
		{221, 221, 221}, {245, 196, 173}, {244, 154, 123}, {222, 96, 77},
		{180, 4, 38},
	}.at},
	{"rainbow", rainbow},
	{"blues", palette{
		{247, 251, 255}, {222, 235, 247}, {198, 219, 239}, {158, 202, 225},
		{107, 174, 214}, {66, 146, 198}, {33, 113, 181}, {8, 81, 156}, {8, 48, 107},
	}.at},
	{"greens", palette{
		{247, 252, 245}, {229, 245, 224}, {199, 233, 192}, {161, 217, 155},
		{116, 196, 118}, {65, 171, 93}, {35, 139, 69}, {0, 109, 44}, {0, 68, 27},
	}.at},
	{"reds", palette{
		{255, 245, 240}, {254, 224, 210}, {252, 187, 161}, {252, 146, 114},
		{251, 106, 74}, {239, 59, 44}, {203, 24, 29}, {165, 15, 21}, {103, 0, 13},
	}.at},
	{"oranges", palette{
		{255, 245, 235}, {254, 230, 206}, {253, 208, 162}, {253, 174, 107},
		{253, 141, 60}, {241, 105, 19}, {217, 72, 1}, {166, 54, 3}, {127, 39, 4},
	}.at},
	{"purples", palette{
		{252, 251, 253}, {239, 237, 245}, {218, 218, 235}, {188, 189, 220},
		{158, 154, 200}, {128, 125, 186}, {106, 81, 163}, {84, 39, 143}, {63, 0, 125},
	}.at},
	{"viridis", palette{
		{68, 1, 84}, {72, 40, 120}, {62, 74, 137}, {49, 104, 142},
		{38, 130, 142}, {31, 158, 137}, {53, 183, 121}, {109, 205, 89},
		{180, 222, 44}, {253, 231, 37},
	}.at},
	{"plasma", palette{
		{13, 8, 135}, {75, 3, 161}, {125, 3, 168}, {168, 34, 150},
		{203, 70, 121}, {229, 107, 93}, {248, 148, 65}, {253, 195, 40},
		{240, 249, 33},
	}.at},
	{"magma", palette{
		{0, 0, 4}, {28, 16, 68}, {79, 18, 123}, {129, 37, 129},
		{181, 54, 122}, {229, 80, 100}, {251, 135, 97}, {254, 194, 135},
		{252, 253, 191},
	}.at},
	{"inferno", palette{
		{0, 0, 4}, {40, 11, 84}, {101, 21, 110}, {159, 42, 99},
		{212, 72, 66}, {245, 125, 21}, {250, 193, 39}, {252, 255, 164},
	}.at},
	{"spectral", palette{
		{158, 1, 66}, {213, 62, 79}, {244, 109, 67}, {253, 174, 97},
		{254, 224, 139}, {255, 255, 191}, {230, 245, 152}, {171, 221, 164},
		{102, 194, 165}, {50, 136, 189}, {94, 79, 162},
	}.at},
	{"white", func(float64) RGB { return ColorWhite }},
}

// SchemeIndex returns the index of the named scheme, or -1 if unknown.
func SchemeIndex(name string) int {
	for i, s := range Schemes {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// SchemeNames returns all scheme names in cycling order.
func SchemeNames() []string {
	names := make([]string, len(Schemes))
	for i, s := range Schemes {
		names[i] = s.Name
	}
	return names
}

// palette is a multi-stop gradient sampled with linear interpolation
// between adjacent stops. t=0 yields the first stop, t=1 the last.
type palette []RGB

func (p palette) at(t float64) RGB {
	n := len(p)
	idx := t * float64(n-1)
	i := int(idx)
	if i > n-2 {
		i = n - 2
	}
	frac := idx - float64(i)
	return p[i].Lerp(p[i+1], frac)
}

// rainbow is the N-to-C terminal rainbow: blue through cyan, green, and
// yellow to red.
func rainbow(t float64) RGB {
	switch {
	case t < 0.25:
		s := t / 0.25
		return RGB{0, uint8(s * 255), 255}
	case t < 0.5:
		s := (t - 0.25) / 0.25
		return RGB{0, 255, uint8(255 * (1 - s))}
	case t < 0.75:
		s := (t - 0.5) / 0.25
		return RGB{uint8(s * 255), 255, 0}
	default:
		s := (t - 0.75) / 0.25
		return RGB{255, uint8(255 * (1 - s)), 0}
	}
}
