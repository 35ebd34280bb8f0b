package helix

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

const (
	// minEdgeLength drops the sub-resolution stitching edges PyMOL's
	// cartoon export produces in large numbers.
	minEdgeLength = 0.1
	// maxEdges caps the wireframe so huge structures stay interactive;
	// above the cap edges are decimated uniformly.
	maxEdges = 50000
	// dedupTolerance treats endpoints within this distance as identical.
	dedupTolerance = 1e-3
)

// LoadOBJ reads a Wavefront OBJ file into a wireframe Model.
func LoadOBJ(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load obj: %w", err)
	}
	defer f.Close()
	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("load obj %s: %w", path, err)
	}
	return m, nil
}

// ParseOBJ parses OBJ geometry from r. Only v and f/fo records are
// consumed; everything else (normals, materials, groups) is skipped.
// Face indices are 1-based and may use the a/b/c syntax, in which case
// only the vertex index is read.
//
// The result is a KindLines model: face perimeters become edges,
// deduplicated and filtered (see minEdgeLength, maxEdges), and each
// vertex gets a chain-rank attribute T normalized over the index range the
// faces span. Faces are also retained fan-triangulated for filled
// rendering.
func ParseOBJ(r io.Reader) (*Model, error) {
	var vertices []Vertex
	var faces [][]int

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	pending := ""
	for scanner.Scan() {
		line := pending + scanner.Text()
		pending = ""
		if rest, ok := strings.CutSuffix(line, "\\"); ok {
			pending = rest + " "
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			z, errZ := strconv.ParseFloat(fields[3], 64)
			if errX != nil || errY != nil || errZ != nil {
				return nil, fmt.Errorf("parse obj: bad vertex %q", line)
			}
			vertices = append(vertices, Vertex{Pos: Vec3{x, y, z}})
		case "f", "fo":
			var face []int
			for _, tok := range fields[1:] {
				idxStr, _, _ := strings.Cut(tok, "/")
				idx, err := strconv.Atoi(idxStr)
				if err != nil || idx < 1 || idx > len(vertices) {
					continue
				}
				face = append(face, idx-1)
			}
			if len(face) >= 2 {
				faces = append(faces, face)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse obj: %w", err)
	}
	if len(vertices) == 0 {
		return nil, fmt.Errorf("parse obj: no vertices found")
	}

	assignChainRank(vertices, faces)

	m := &Model{
		Vertices: vertices,
		Edges:    extractEdges(vertices, faces),
		Faces:    triangulate(faces),
		Kind:     KindLines,
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("parse obj: %w", err)
	}
	return m, nil
}

// assignChainRank sets each vertex's T to its normalized position in the
// index range the faces span. PyMOL emits cartoon vertices in chain order,
// so this rank approximates the N-to-C sequence position.
func assignChainRank(vertices []Vertex, faces [][]int) {
	minIdx, maxIdx := len(vertices), 0
	for _, face := range faces {
		for _, idx := range face {
			if idx < minIdx {
				minIdx = idx
			}
			if idx > maxIdx {
				maxIdx = idx
			}
		}
	}
	if len(faces) == 0 {
		minIdx, maxIdx = 0, len(vertices)-1
	}
	span := maxIdx - minIdx
	if span < 1 {
		span = 1
	}
	for i := range vertices {
		vertices[i].T = clamp01(float64(i-minIdx) / float64(span))
	}
}

// extractEdges walks every face perimeter and returns the deduplicated,
// length-filtered, decimated wireframe.
func extractEdges(vertices []Vertex, faces [][]int) []Edge {
	var edges []Edge
	for _, face := range faces {
		for i := range face {
			a := face[i]
			b := face[(i+1)%len(face)]
			edges = append(edges, Edge{A: a, B: b})
		}
	}

	// Sort by quantized endpoint positions so near-identical edges become
	// adjacent, then drop duplicates within tolerance.
	key := func(e Edge) [6]int {
		pa, pb := vertices[e.A].Pos, vertices[e.B].Pos
		q := func(v float64) int { return int(v * 1000) }
		return [6]int{q(pa.X), q(pa.Y), q(pa.Z), q(pb.X), q(pb.Y), q(pb.Z)}
	}
	sort.Slice(edges, func(i, j int) bool {
		ki, kj := key(edges[i]), key(edges[j])
		for n := 0; n < 6; n++ {
			if ki[n] != kj[n] {
				return ki[n] < kj[n]
			}
		}
		return false
	})

	samePoint := func(a, b Vec3) bool {
		d := a.Sub(b)
		return d.X > -dedupTolerance && d.X < dedupTolerance &&
			d.Y > -dedupTolerance && d.Y < dedupTolerance &&
			d.Z > -dedupTolerance && d.Z < dedupTolerance
	}
	deduped := edges[:0]
	for i, e := range edges {
		if i > 0 {
			prev := deduped[len(deduped)-1]
			if samePoint(vertices[e.A].Pos, vertices[prev.A].Pos) &&
				samePoint(vertices[e.B].Pos, vertices[prev.B].Pos) {
				continue
			}
		}
		deduped = append(deduped, e)
	}
	edges = deduped

	filtered := edges[:0]
	for _, e := range edges {
		d := vertices[e.B].Pos.Sub(vertices[e.A].Pos)
		if d.Dot(d) >= minEdgeLength*minEdgeLength {
			filtered = append(filtered, e)
		}
	}
	edges = filtered

	if len(edges) > maxEdges {
		step := (len(edges) + maxEdges - 1) / maxEdges
		kept := edges[:0]
		for i := 0; i < len(edges); i += step {
			kept = append(kept, edges[i])
		}
		edges = kept
	}
	return edges
}

// triangulate fans each polygonal face into triangles.
func triangulate(faces [][]int) []Face {
	var tris []Face
	for _, face := range faces {
		for i := 2; i < len(face); i++ {
			tris = append(tris, Face{A: face[0], B: face[i-1], C: face[i]})
		}
	}
	return tris
}
