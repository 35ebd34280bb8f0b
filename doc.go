// Package helix renders 3D molecular structures as colored glyphs directly
// in the terminal, with interactive orbit, pan, and zoom controls.
//
// Helix projects a wireframe [Model] through a yaw/pitch orbit [Camera]
// onto a sub-cell grid finer than the visible character grid, resolves
// per-sub-cell visibility with a nearest-wins depth rule, maps each covered
// cell's chain attribute through a color [Scheme], and packs the result
// into Braille or block glyphs with 24-bit ANSI color.
//
// # Quick start
//
//	model, err := helix.LoadOBJ("structure.obj")
//	if err != nil { ... }
//	term, err := helix.OpenTerminal()
//	if err != nil { ... }
//	defer term.Close()
//	sess := helix.NewSession(term, model, helix.Config{Name: "structure"})
//	err = sess.Run()
//
// The cmd/helix binary adds the full workflow: fetching structures from the
// RCSB PDB, exporting cartoon meshes through PyMOL, searching, and caching.
//
// # Controls
//
//	Mouse drag    Rotate around the model (disables auto-rotate)
//	Shift + drag  Pan the view
//	Scroll        Zoom in/out
//	r             Toggle auto-rotation
//	c             Cycle color schemes
//	b             Toggle Braille/block glyphs
//	0             Reset the view
//	q, Ctrl-C     Quit
//
// # Render pipeline
//
// Each frame runs Model -> [Projector] -> [Frame] (rasterizer) -> glyph
// packing -> [Terminal]. The model is immutable after load; the camera is
// mutated only by the session's input loop; the frame buffer is cleared and
// rebuilt every frame. All mutable viewing state (active scheme, glyph
// mode, auto-rotate) lives on the [Session], so independent sessions can
// coexist in one process.
package helix
