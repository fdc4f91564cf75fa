package trail

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one skinned strip vertex. Alpha is the fade opacity the
// renderer multiplies into the ribbon tint.
type Vertex struct {
	Pos   mgl32.Vec2
	Alpha float32
}

// Mesh is one ribbon's triangle strip: vertex pairs L0,R0,L1,R1,... with
// exactly two vertices per particle, oldest particle first. Meshes of
// different ribbons never share vertices.
type Mesh struct {
	ID    RibbonID
	Verts []Vertex
}

// Style carries the per-ribbon skinning parameters.
type Style struct {
	Width float32
	Fade  Fade
}

// normalEps rejects segment directions too short to normalize.
const normalEps = 1e-6

// defaultNormal orients ribbons whose particles all coincide.
var defaultNormal = mgl32.Vec2{0, -1}

// Builder skins grouped ribbons into strip meshes. Vertex storage is a
// single arena reused across frames; the returned meshes stay valid until
// the next Build call.
type Builder struct {
	meshes []Mesh
	arena  []Vertex
	segs   []mgl32.Vec2 // per-segment normals scratch
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder { return &Builder{} }

// Build skins every grouped ribbon. styleFor resolves the skinning
// parameters for a ribbon id.
func (b *Builder) Build(st *Store, ribbons []Ribbon, styleFor func(RibbonID) Style) []Mesh {
	total := 0
	for _, rb := range ribbons {
		if len(rb.Slots) >= 2 {
			total += 2 * len(rb.Slots)
		}
	}
	// Size the arena up front: appends must never reallocate it, or the
	// meshes emitted earlier in the frame would alias stale memory.
	if cap(b.arena) < total {
		b.arena = make([]Vertex, 0, total)
	}
	b.arena = b.arena[:0]
	b.meshes = b.meshes[:0]

	for _, rb := range ribbons {
		if len(rb.Slots) < 2 {
			continue
		}
		start := len(b.arena)
		b.appendStrip(st, rb, styleFor(rb.ID))
		b.meshes = append(b.meshes, Mesh{
			ID:    rb.ID,
			Verts: b.arena[start:len(b.arena):len(b.arena)],
		})
	}
	return b.meshes
}

// appendStrip emits the vertex pairs for one ribbon. Width and opacity at
// each particle come from the fade evaluated at u = age/lifetime, so the
// strip tapers toward its old end.
func (b *Builder) appendStrip(st *Store, rb Ribbon, style Style) {
	pts := rb.Slots

	// Per-segment normals. Zero-length segments (particles deposited on
	// one tick share a position) have no direction; they inherit the
	// previous valid normal, and leading ones borrow the first valid one.
	// A ribbon with no extent at all falls back to a fixed normal and
	// produces zero-area geometry, which is still valid to draw.
	b.segs = b.segs[:0]
	cur := defaultNormal
	firstValid := -1
	for k := 1; k < len(pts); k++ {
		d := particlePos(st, pts[k]).Sub(particlePos(st, pts[k-1]))
		if l := d.Len(); l > normalEps {
			cur = mgl32.Vec2{-d[1] / l, d[0] / l}
			if firstValid < 0 {
				firstValid = k - 1
			}
		}
		b.segs = append(b.segs, cur)
	}
	for k := 0; k < firstValid; k++ {
		b.segs[k] = b.segs[firstValid]
	}

	for i, p := range pts {
		n := b.vertexNormal(i)

		u := float32(1)
		if lt := st.Lifetime[p]; lt > 0 {
			u = st.Age[p] / lt
		}
		sizeScale, alpha := style.Fade.Eval(u)

		c := particlePos(st, p)
		off := n.Mul(0.5 * style.Width * sizeScale)
		b.arena = append(b.arena,
			Vertex{Pos: c.Add(off), Alpha: alpha},
			Vertex{Pos: c.Sub(off), Alpha: alpha},
		)
	}
}

// vertexNormal blends the segment normals meeting at particle i. Endpoints
// take their single segment's normal.
func (b *Builder) vertexNormal(i int) mgl32.Vec2 {
	switch {
	case i == 0:
		return b.segs[0]
	case i == len(b.segs):
		return b.segs[i-1]
	}
	sum := b.segs[i-1].Add(b.segs[i])
	if l := sum.Len(); l > normalEps {
		return sum.Mul(1 / l)
	}
	// Adjacent segments run opposite ways (hairpin turn); keep the
	// outgoing side rather than collapsing the joint.
	return b.segs[i]
}

func particlePos(st *Store, i int) mgl32.Vec2 {
	return mgl32.Vec2{st.X[i], st.Y[i]}
}
