package helix

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

// newTestSession builds a session over a tcell simulation screen.
func newTestSession(t *testing.T, model *Model, cfg Config) (*Session, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(80, 24)
	term := NewTerminal(screen)
	t.Cleanup(term.Close)
	return NewSession(term, model, cfg), screen
}

func testCubeModel() *Model {
	var m Model
	for i, c := range [][3]float64{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	} {
		m.Vertices = append(m.Vertices, Vertex{
			Pos: Vec3{c[0], c[1], c[2]},
			T:   float64(i) / 7,
		})
	}
	m.Edges = []Edge{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	m.Kind = KindLines
	return &m
}

// screenCells snapshots the simulation screen contents after a draw.
func screenCells(screen tcell.SimulationScreen) []tcell.SimCell {
	cells, _, _ := screen.GetContents()
	out := make([]tcell.SimCell, len(cells))
	copy(out, cells)
	return out
}

func sameCells(a, b []tcell.SimCell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Style != b[i].Style || string(a[i].Bytes) != string(b[i].Bytes) {
			return false
		}
	}
	return true
}

func TestSessionRendersModel(t *testing.T) {
	s, screen := newTestSession(t, testCubeModel(), Config{Name: "cube"})
	s.RenderFrame()

	drawn := 0
	for _, c := range screenCells(screen) {
		r := []rune(string(c.Bytes))
		if len(r) > 0 && r[0] >= 0x2800 && r[0] <= 0x28FF {
			drawn++
		}
	}
	if drawn == 0 {
		t.Fatal("no Braille glyphs on screen after rendering a cube")
	}
}

func TestSessionEmptyModelRenders(t *testing.T) {
	s, screen := newTestSession(t, &Model{Kind: KindLines}, Config{Name: "empty"})
	s.RenderFrame()
	for _, c := range screenCells(screen) {
		r := []rune(string(c.Bytes))
		if len(r) > 0 && r[0] >= 0x2800 && r[0] <= 0x28FF {
			t.Fatal("empty model drew glyphs")
		}
	}
}

func TestSessionRenderIsIdempotent(t *testing.T) {
	s, screen := newTestSession(t, testCubeModel(), Config{Name: "cube", NoAutoRotate: true})
	s.RenderFrame()
	first := screenCells(screen)
	s.RenderFrame()
	second := screenCells(screen)
	if !sameCells(first, second) {
		t.Error("re-rendering an unchanged session altered the screen")
	}
}

func TestSessionQuitKeys(t *testing.T) {
	s, _ := newTestSession(t, testCubeModel(), Config{})
	quits := []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone),
		tcell.NewEventInterrupt(nil),
	}
	for _, ev := range quits {
		if !s.HandleEvent(ev) {
			t.Errorf("%T did not quit", ev)
		}
	}
	if s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("unbound key quit the session")
	}
}

func TestSessionSchemeCycling(t *testing.T) {
	s, _ := newTestSession(t, testCubeModel(), Config{})
	if s.scheme != 0 {
		t.Fatalf("initial scheme = %d, want 0", s.scheme)
	}
	key := tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone)
	for i := 1; i <= len(Schemes); i++ {
		s.HandleEvent(key)
		if s.scheme != i%len(Schemes) {
			t.Fatalf("after %d presses scheme = %d, want %d", i, s.scheme, i%len(Schemes))
		}
	}
}

func TestSessionModeToggle(t *testing.T) {
	s, _ := newTestSession(t, testCubeModel(), Config{})
	key := tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone)
	s.HandleEvent(key)
	if s.mode != ModeBlock {
		t.Error("first toggle did not switch to block mode")
	}
	s.HandleEvent(key)
	if s.mode != ModeBraille {
		t.Error("second toggle did not switch back to braille")
	}
}

func TestSessionAutoRotateToggle(t *testing.T) {
	s, _ := newTestSession(t, testCubeModel(), Config{})
	if !s.autoRotate {
		t.Fatal("auto-rotate should default on")
	}
	key := tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)
	s.HandleEvent(key)
	if s.autoRotate {
		t.Error("'r' did not stop auto-rotation")
	}
	s.HandleEvent(key)
	if !s.autoRotate {
		t.Error("'r' did not restart auto-rotation")
	}

	s2, _ := newTestSession(t, testCubeModel(), Config{NoAutoRotate: true})
	if s2.autoRotate {
		t.Error("NoAutoRotate config ignored")
	}
}

func TestSessionAutoRotateAdvancesYaw(t *testing.T) {
	s, _ := newTestSession(t, testCubeModel(), Config{})
	before := s.cam.Pose().Yaw
	s.step(1.0 / 30)
	if s.cam.Pose().Yaw == before {
		t.Error("auto-rotate did not advance the yaw")
	}

	s.autoRotate = false
	before = s.cam.Pose().Yaw
	s.step(1.0 / 30)
	if s.cam.Pose().Yaw != before {
		t.Error("yaw advanced with auto-rotate off")
	}
}

func TestSessionResetRestoresView(t *testing.T) {
	s, _ := newTestSession(t, testCubeModel(), Config{})
	initial := s.cam.Pose()

	// Drag to rotate: press, then move.
	s.HandleEvent(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	s.HandleEvent(tcell.NewEventMouse(30, 14, tcell.Button1, tcell.ModNone))
	s.HandleEvent(tcell.NewEventMouse(30, 14, tcell.ButtonNone, tcell.ModNone))
	if s.autoRotate {
		t.Error("rotate drag did not stop auto-rotation")
	}
	if s.cam.Pose() == initial {
		t.Fatal("drag did not move the camera")
	}

	s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '0', tcell.ModNone))
	if s.cam.Pose() != initial {
		t.Errorf("reset pose %+v, want %+v", s.cam.Pose(), initial)
	}
	if !s.autoRotate {
		t.Error("reset did not restore auto-rotation")
	}
}

func TestSessionShiftDragPans(t *testing.T) {
	s, _ := newTestSession(t, testCubeModel(), Config{})
	before := s.cam.Pose()

	s.HandleEvent(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModShift))
	s.HandleEvent(tcell.NewEventMouse(20, 10, tcell.Button1, tcell.ModShift))

	after := s.cam.Pose()
	if after.Center == before.Center {
		t.Error("shift-drag did not pan the center")
	}
	if after.Yaw != before.Yaw || after.Pitch != before.Pitch {
		t.Error("shift-drag rotated the camera")
	}
	if !s.autoRotate {
		t.Error("panning stopped auto-rotation")
	}
}

func TestSessionWheelZoom(t *testing.T) {
	s, _ := newTestSession(t, testCubeModel(), Config{})
	start := s.cam.targetDistance

	s.HandleEvent(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	if s.cam.targetDistance >= start {
		t.Error("wheel up did not zoom in")
	}
	zoomedIn := s.cam.targetDistance

	s.HandleEvent(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone))
	if s.cam.targetDistance <= zoomedIn {
		t.Error("wheel down did not zoom out")
	}
}

func TestSessionResize(t *testing.T) {
	s, screen := newTestSession(t, testCubeModel(), Config{NoAutoRotate: true})
	s.RenderFrame()

	screen.SetSize(40, 12)
	s.HandleEvent(tcell.NewEventResize(40, 12))
	s.RenderFrame()

	if s.frame.W != 40*s.mode.SubW() || s.frame.H != 11*s.mode.SubH() {
		t.Errorf("frame grid %dx%d after resize", s.frame.W, s.frame.H)
	}
}

func TestSessionPointsAndTrianglesRender(t *testing.T) {
	for _, kind := range []PrimitiveKind{KindPoints, KindTriangles} {
		m := testCubeModel()
		m.Kind = kind
		if kind == KindTriangles {
			m.Faces = []Face{{0, 1, 2}, {0, 2, 3}, {4, 5, 6}, {4, 6, 7}}
		}
		s, screen := newTestSession(t, m, Config{Name: kind.String()})
		s.RenderFrame()

		drawn := 0
		for _, c := range screenCells(screen) {
			r := []rune(string(c.Bytes))
			if len(r) > 0 && r[0] >= 0x2800 && r[0] <= 0x28FF {
				drawn++
			}
		}
		if drawn == 0 {
			t.Errorf("%v model drew nothing", kind)
		}
	}
}

func TestSessionStatusBar(t *testing.T) {
	s, screen := newTestSession(t, testCubeModel(), Config{Name: "cube"})
	s.RenderFrame()

	w, h := screen.Size()
	row := make([]rune, 0, w)
	cells, sw, _ := screen.GetContents()
	for x := 0; x < sw; x++ {
		c := cells[(h-1)*sw+x]
		r := []rune(string(c.Bytes))
		if len(r) > 0 {
			row = append(row, r[0])
		}
	}
	line := string(row)
	for _, want := range []string{"cube", "coolwarm", "auto"} {
		if !strings.Contains(line, want) {
			t.Errorf("status bar %q missing %q", line, want)
		}
	}
}
