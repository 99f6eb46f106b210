package scene

import (
	"image/color"

	"clock3d/internal/mathutil"
)

// Scene is the root of everything drawn in one frame.
type Scene struct {
	Root       *Node
	Background color.NRGBA
}

// New returns an empty scene with the given clear color.
func New(background color.NRGBA) *Scene {
	return &Scene{Root: NewNode("scene"), Background: background}
}

// Add attaches nodes to the scene root.
func (s *Scene) Add(nodes ...*Node) { s.Root.Add(nodes...) }

// MeshCount returns the number of visible nodes that carry geometry.
func (s *Scene) MeshCount() int {
	n := 0
	s.Root.Walk(func(node *Node, _ mathutil.Mat4) {
		if node.Geometry != nil {
			n++
		}
	})
	return n
}
