package helix

import "time"

// frameTimer tracks per-frame wall time for the status bar FPS readout.
// The displayed value refreshes every half second so it stays readable.
type frameTimer struct {
	last       time.Time
	frames     int
	window     time.Duration
	displayFPS float64
}

func newFrameTimer() *frameTimer {
	return &frameTimer{last: time.Now()}
}

// tick records one rendered frame and returns the seconds elapsed since
// the previous tick.
func (ft *frameTimer) tick() float64 {
	now := time.Now()
	dt := now.Sub(ft.last)
	ft.last = now

	ft.frames++
	ft.window += dt
	if ft.window >= 500*time.Millisecond {
		ft.displayFPS = float64(ft.frames) / ft.window.Seconds()
		ft.frames = 0
		ft.window = 0
	}
	return dt.Seconds()
}

// fps returns the smoothed frames-per-second readout.
func (ft *frameTimer) fps() float64 {
	return ft.displayFPS
}
