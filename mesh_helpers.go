package marionette

import "fmt"

// NewGridMesh builds a width x height mesh centred on the origin and split
// into cols x rows cells. UVs span [0, 1] with (0, 0) at the top-left.
// Vertices are laid out row by row, (cols+1) per row.
func NewGridMesh(width, height float32, cols, rows int) Mesh {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	vcols := cols + 1
	vrows := rows + 1
	if vcols*vrows > 1<<16 {
		panic(fmt.Sprintf("marionette: %dx%d grid exceeds 16-bit indexing", cols, rows))
	}

	m := Mesh{
		Vertices: make([]Vec2, vcols*vrows),
		UVs:      make([]Vec2, vcols*vrows),
		Indices:  make([]uint16, 0, cols*rows*6),
	}
	for r := 0; r < vrows; r++ {
		for c := 0; c < vcols; c++ {
			u := float32(c) / float32(cols)
			v := float32(r) / float32(rows)
			idx := r*vcols + c
			m.Vertices[idx] = Vec2{(u - 0.5) * width, (v - 0.5) * height}
			m.UVs[idx] = Vec2{u, v}
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			tl := uint16(r*vcols + c)
			tr := tl + 1
			bl := uint16((r+1)*vcols + c)
			br := bl + 1
			m.Indices = append(m.Indices, tl, bl, tr, tr, bl, br)
		}
	}
	return m
}

// NewQuadMesh builds a single-cell grid mesh.
func NewQuadMesh(width, height float32) Mesh {
	return NewGridMesh(width, height, 1, 1)
}

// NewPolygonMesh fan-triangulates a convex polygon. UVs map the polygon's
// bounding box to [0, 1]. Returns an empty mesh for fewer than 3 points.
func NewPolygonMesh(points []Vec2) Mesh {
	n := len(points)
	if n < 3 {
		return Mesh{}
	}

	minP, maxP := points[0], points[0]
	for _, p := range points[1:] {
		minP = Vec2{min(minP[0], p[0]), min(minP[1], p[1])}
		maxP = Vec2{max(maxP[0], p[0]), max(maxP[1], p[1])}
	}
	size := maxP.Sub(minP)

	m := Mesh{
		Vertices: append([]Vec2(nil), points...),
		UVs:      make([]Vec2, n),
		Indices:  make([]uint16, 0, (n-2)*3),
	}
	for i, p := range points {
		var uv Vec2
		if size[0] > 0 {
			uv[0] = (p[0] - minP[0]) / size[0]
		}
		if size[1] > 0 {
			uv[1] = (p[1] - minP[1]) / size[1]
		}
		m.UVs[i] = uv
	}
	// Vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		m.Indices = append(m.Indices, 0, uint16(i+1), uint16(i+2))
	}
	return m
}

// GridDeform computes one deform offset per vertex of a mesh built by
// NewGridMesh with the same cols and rows. fn receives the cell
// coordinates and rest position of each vertex.
func GridDeform(m Mesh, cols, rows int, fn func(col, row int, rest Vec2) Vec2) []Vec2 {
	vcols := max(cols, 1) + 1
	vrows := max(rows, 1) + 1
	if len(m.Vertices) != vcols*vrows {
		panic(fmt.Sprintf("marionette: mesh has %d vertices, a %dx%d grid has %d", len(m.Vertices), cols, rows, vcols*vrows))
	}
	out := make([]Vec2, len(m.Vertices))
	for r := 0; r < vrows; r++ {
		for c := 0; c < vcols; c++ {
			idx := r*vcols + c
			out[idx] = fn(c, r, m.Vertices[idx])
		}
	}
	return out
}
