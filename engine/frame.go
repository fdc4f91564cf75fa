package engine

import (
	"github.com/pthm-cable/wisp/components"
	"github.com/pthm-cable/wisp/trail"
)

// Drawable pairs a ribbon mesh with the color it should be drawn in.
type Drawable struct {
	trail.Mesh
	Tint components.Tint
}

// Frame is the render-ready output of one completed tick. The engine
// publishes a frame only after every stage of the tick has finished, so
// a consumer never sees meshes from one tick next to counts from
// another.
type Frame struct {
	Tick   int32
	Live   int
	Meshes []Drawable
}

// Vertices returns the total vertex count across all meshes.
func (f *Frame) Vertices() int {
	n := 0
	for i := range f.Meshes {
		n += len(f.Meshes[i].Verts)
	}
	return n
}
