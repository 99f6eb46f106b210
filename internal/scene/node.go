// Package scene is a minimal hierarchical scene graph: named nodes carrying an
// optional mesh and material, each with a local 4×4 transform.
package scene

import (
	"image"
	"image/color"

	"clock3d/internal/geometry"
	"clock3d/internal/mathutil"
)

// Material describes how a mesh is shaded.
type Material struct {
	Color color.NRGBA
	// Unlit materials ignore lighting and draw Color as-is.
	Unlit     bool
	Metalness float64
	Roughness float64
	Texture   *image.NRGBA
}

// Node is one element of the hierarchy.
//
// With MatrixAutoUpdate set, the local transform is derived from Position,
// Rotation (Euler XYZ, radians) and Scale. With it cleared, Matrix is used as
// written, which is how animated nodes are driven.
type Node struct {
	Name     string
	Geometry *geometry.Mesh
	Material *Material

	Position mathutil.Vec3
	Rotation mathutil.Vec3
	Scale    mathutil.Vec3

	Matrix           mathutil.Mat4
	MatrixAutoUpdate bool
	Visible          bool

	parent   *Node
	children []*Node
}

// NewNode returns an empty group node.
func NewNode(name string) *Node {
	return &Node{
		Name:             name,
		Scale:            mathutil.Vec3{1, 1, 1},
		Matrix:           mathutil.Mat4Identity(),
		MatrixAutoUpdate: true,
		Visible:          true,
	}
}

// NewMesh returns a node that draws geo with mat.
func NewMesh(name string, geo *geometry.Mesh, mat *Material) *Node {
	n := NewNode(name)
	n.Geometry = geo
	n.Material = mat
	return n
}

// Add attaches children, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.parent != nil {
			c.parent.remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

func (n *Node) remove(c *Node) {
	for i, x := range n.children {
		if x == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// SetMatrix drives the node manually: auto-update is switched off and m becomes
// the local transform.
func (n *Node) SetMatrix(m mathutil.Mat4) {
	n.MatrixAutoUpdate = false
	n.Matrix = m
}

// LocalMatrix returns the node's current local transform without mutating it.
func (n *Node) LocalMatrix() mathutil.Mat4 {
	if !n.MatrixAutoUpdate {
		return n.Matrix
	}
	q := mathutil.EulerToQuat(n.Rotation[0], n.Rotation[1], n.Rotation[2])
	rot := mathutil.FromMat3Translation(mathutil.QuatToMat3(q), n.Position)
	return mathutil.Mat4Mul(rot, mathutil.Mat4Scale(n.Scale[0], n.Scale[1], n.Scale[2]))
}

// FindByName returns the first node in depth-first order with the given name,
// searching n itself first. Returns nil when absent.
func (n *Node) FindByName(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits every visible node with its world matrix (parent world × local).
// Invisible nodes hide their whole subtree.
func (n *Node) Walk(fn func(node *Node, world mathutil.Mat4)) {
	n.walk(mathutil.Mat4Identity(), fn)
}

func (n *Node) walk(parentWorld mathutil.Mat4, fn func(*Node, mathutil.Mat4)) {
	if !n.Visible {
		return
	}
	world := mathutil.Mat4Mul(parentWorld, n.LocalMatrix())
	fn(n, world)
	for _, c := range n.children {
		c.walk(world, fn)
	}
}

// WorldMatrix returns the node's world transform by chaining up through its parents.
func (n *Node) WorldMatrix() mathutil.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = mathutil.Mat4Mul(p.LocalMatrix(), m)
	}
	return m
}
