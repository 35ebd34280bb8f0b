package helix

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

const (
	defaultTargetFPS = 30
	autoRotateSpeed  = 0.005 // radians per frame
	dragRotateSpeed  = 6.0   // radians per full-width drag
	dragPanSpeed     = 1.2   // distance fraction per full-width drag
	scrollZoomFrac   = 0.03  // diagonal fraction per wheel notch
)

// Config carries the initial viewing state for a Session.
type Config struct {
	// Name is shown in the status bar (PDB ID or file name).
	Name string
	// Scheme is the initial color scheme index into Schemes.
	Scheme int
	// Mode is the initial glyph packing mode.
	Mode GlyphMode
	// TargetFPS bounds the render loop; zero means 30.
	TargetFPS int
	// NoAutoRotate starts the view still instead of spinning.
	NoAutoRotate bool
}

// Session is one interactive viewing of a model. It exclusively owns the
// camera, the frame buffer, and all mutable viewing state (active scheme,
// glyph mode, auto-rotate), so multiple sessions can run independently in
// one process.
type Session struct {
	term  *Terminal
	model *Model
	cam   *Camera
	proj  *Projector
	frame *Frame
	timer *frameTimer

	scheme     int
	mode       GlyphMode
	autoRotate bool

	name      string
	targetFPS int
	diagonal  float64

	dragging   bool
	panning    bool
	lastMouseX int
	lastMouseY int
}

// NewSession builds a session viewing model through term. The camera
// starts on the initial orbit pose, auto-rotating unless configured
// otherwise; an empty model renders an empty viewport without error.
func NewSession(term *Terminal, model *Model, cfg Config) *Session {
	fps := cfg.TargetFPS
	if fps <= 0 {
		fps = defaultTargetFPS
	}
	diag := model.Diagonal()
	scheme := cfg.Scheme
	if scheme < 0 || scheme >= len(Schemes) {
		scheme = 0
	}

	w, h := term.Size()
	mode := cfg.Mode
	gw, gh := w*mode.SubW(), (h-1)*mode.SubH()

	return &Session{
		term:       term,
		model:      model,
		cam:        NewCamera(model.Center(), diag, fps),
		proj:       NewProjector(gw, gh),
		frame:      NewFrame(gw, gh),
		timer:      newFrameTimer(),
		scheme:     scheme,
		mode:       mode,
		autoRotate: !cfg.NoAutoRotate,
		name:       cfg.Name,
		targetFPS:  fps,
		diagonal:   diag,
	}
}

// Camera exposes the session camera for tests and embedding callers.
func (s *Session) Camera() *Camera { return s.cam }

// Run drives the poll-update-render cycle until quit. Input events are
// drained without blocking; the frame ticker bounds the wait so the
// auto-rotate animation advances even with no input. Returns nil on a
// clean quit.
func (s *Session) Run() error {
	interval := time.Second / time.Duration(s.targetFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if quit := s.drainEvents(); quit {
			return nil
		}
		dt := s.timer.tick()
		s.step(dt)
		s.RenderFrame()
		<-ticker.C
	}
}

// drainEvents applies every pending input event, one state update each.
// Returns true on a quit event or a closed event stream.
func (s *Session) drainEvents() bool {
	for {
		select {
		case ev, ok := <-s.term.Events():
			if !ok {
				return true
			}
			if s.HandleEvent(ev) {
				return true
			}
		default:
			return false
		}
	}
}

// HandleEvent applies one input event to the session state. Returns true
// when the event requests quitting.
func (s *Session) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.handleKey(ev)
	case *tcell.EventMouse:
		s.handleMouse(ev)
	case *tcell.EventResize:
		// Drop the in-progress frame; the next RenderFrame picks up the
		// new dimensions.
		s.term.Sync()
	case *tcell.EventInterrupt:
		return true
	}
	return false
}

func (s *Session) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}
	switch ev.Rune() {
	case 'q':
		return true
	case 'c':
		s.scheme = (s.scheme + 1) % len(Schemes)
	case 'r':
		s.autoRotate = !s.autoRotate
	case 'b':
		if s.mode == ModeBraille {
			s.mode = ModeBlock
		} else {
			s.mode = ModeBraille
		}
	case '0':
		s.cam.Reset()
		s.autoRotate = true
	}
	return false
}

func (s *Session) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		s.cam.Zoom(-s.diagonal * scrollZoomFrac)
	case ev.Buttons()&tcell.WheelDown != 0:
		s.cam.Zoom(s.diagonal * scrollZoomFrac)
	case ev.Buttons()&tcell.Button1 != 0:
		if !s.dragging {
			s.dragging = true
			s.panning = ev.Modifiers()&tcell.ModShift != 0
			s.cam.StopMomentum()
		} else {
			w, h := s.term.Size()
			if w < 1 {
				w = 1
			}
			if h < 2 {
				h = 2
			}
			dx := float64(x-s.lastMouseX) / float64(w)
			dy := float64(y-s.lastMouseY) / float64(h-1)
			if s.panning {
				s.cam.Pan(dx*dragPanSpeed, dy*dragPanSpeed)
			} else {
				s.autoRotate = false
				s.cam.Rotate(-dx*dragRotateSpeed, dy*dragRotateSpeed)
			}
		}
		s.lastMouseX, s.lastMouseY = x, y
	default:
		s.dragging = false
		s.panning = false
	}
}

// step advances animation state by dt seconds.
func (s *Session) step(dt float64) {
	if s.autoRotate && !s.dragging {
		s.cam.Spin(autoRotateSpeed)
	}
	s.cam.Update(dt)
}

// RenderFrame projects, rasterizes, colorizes, packs, and presents one
// frame for the current state. Re-rendering an unchanged state produces
// identical output.
func (s *Session) RenderFrame() {
	w, h := s.term.Size()
	if w <= 0 || h <= 1 {
		return
	}
	gw, gh := w*s.mode.SubW(), (h-1)*s.mode.SubH()
	s.frame.Resize(gw, gh)
	s.frame.Clear()
	s.proj.SetViewport(gw, gh)
	s.proj.SetCamera(s.cam)

	s.plotModel()

	scheme := Schemes[s.scheme]
	Pack(s.frame, s.mode, scheme, func(col, row int, glyph rune, color RGB) {
		s.term.SetCell(col, row, glyph, color)
	})
	s.drawStatus(w, h)
	s.term.Show()
}

// plotModel rasterizes the model's primitive list for the current camera.
func (s *Session) plotModel() {
	switch s.model.Kind {
	case KindPoints:
		for _, v := range s.model.Vertices {
			if x, y, depth, ok := s.proj.Project(v.Pos); ok {
				s.frame.Plot(x, y, depth, v.T)
			}
		}

	case KindLines:
		for _, e := range s.model.Edges {
			va, vb := s.model.Vertices[e.A], s.model.Vertices[e.B]
			ca := s.proj.WorldToCamera(va.Pos)
			cb := s.proj.WorldToCamera(vb.Pos)
			ca, cb, ta, tb, ok := s.proj.ClipNear(ca, cb, va.T, vb.T)
			if !ok {
				continue
			}
			ax, ay := s.proj.CameraToScreen(ca)
			bx, by := s.proj.CameraToScreen(cb)
			s.frame.Line(
				ScreenVertex{X: ax, Y: ay, Z: ca.Z, T: ta},
				ScreenVertex{X: bx, Y: by, Z: cb.Z, T: tb},
			)
		}

	case KindTriangles:
		for _, face := range s.model.Faces {
			va, vb, vc := s.model.Vertices[face.A], s.model.Vertices[face.B], s.model.Vertices[face.C]
			ca := s.proj.WorldToCamera(va.Pos)
			cb := s.proj.WorldToCamera(vb.Pos)
			cc := s.proj.WorldToCamera(vc.Pos)
			// Triangles crossing the near plane are dropped, not clipped.
			if ca.Z < s.proj.Near || cb.Z < s.proj.Near || cc.Z < s.proj.Near {
				continue
			}
			ax, ay := s.proj.CameraToScreen(ca)
			bx, by := s.proj.CameraToScreen(cb)
			cx, cy := s.proj.CameraToScreen(cc)
			s.frame.Triangle(
				ScreenVertex{X: ax, Y: ay, Z: ca.Z, T: va.T},
				ScreenVertex{X: bx, Y: by, Z: cb.Z, T: vb.T},
				ScreenVertex{X: cx, Y: cy, Z: cc.Z, T: vc.T},
			)
		}
	}
}

// drawStatus writes the bottom status row, degrading to shorter variants
// when the terminal is narrow.
func (s *Session) drawStatus(w, h int) {
	rotate := "manual"
	if s.autoRotate {
		rotate = "auto"
	}
	scheme := Schemes[s.scheme].Name

	full := fmt.Sprintf("%s | %s | %s | %.0ffps | [r]otate [c]olor [b]locks [0]reset [q]uit",
		s.name, scheme, rotate, s.timer.fps())
	medium := fmt.Sprintf("%s | %s | %s | %.0ffps", s.name, scheme, rotate, s.timer.fps())
	short := fmt.Sprintf("%s | %s", s.name, scheme)

	status := ""
	switch {
	case w > len(full):
		status = full
	case w > len(medium):
		status = medium
	case w > len(short):
		status = short
	}

	row := h - 1
	for col := 0; col < w; col++ {
		s.term.SetCell(col, row, ' ', ColorWhite)
	}
	s.term.SetText((w-len(status))/2, row, status)
}
