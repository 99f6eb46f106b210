package scene

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clock3d/internal/geometry"
	"clock3d/internal/mathutil"
)

func TestLocalMatrix_AutoUpdateComposesTRS(t *testing.T) {
	n := NewNode("tick")
	n.Position = mathutil.Vec3{1, 2, 3}
	n.Rotation = mathutil.Vec3{0, 0, math.Pi / 2}
	n.Scale = mathutil.Vec3{2, 1, 1}

	got := n.LocalMatrix().MulPoint(mathutil.Vec3{1, 0, 0})
	// scale -> (2,0,0), rotate z 90° -> (0,2,0), translate -> (1,4,3)
	assert.InDelta(t, 1, got[0], 1e-9)
	assert.InDelta(t, 4, got[1], 1e-9)
	assert.InDelta(t, 3, got[2], 1e-9)
}

func TestSetMatrix_DisablesAutoUpdate(t *testing.T) {
	n := NewNode("hand")
	n.Position = mathutil.Vec3{9, 9, 9}
	m := mathutil.Mat4Translation(mathutil.Vec3{1, 0, 0})

	n.SetMatrix(m)

	assert.False(t, n.MatrixAutoUpdate)
	assert.Equal(t, m, n.LocalMatrix())
}

func TestAdd_Reparents(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.Add(c)
	b.Add(c)

	assert.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)
	assert.Same(t, b, c.Parent())

	b.Add(nil, b)
	assert.Len(t, b.Children(), 1)
}

func TestFindByName_DepthFirst(t *testing.T) {
	root := NewNode("root")
	face := NewNode("face")
	hand := NewNode("secondHand")
	face.Add(hand)
	root.Add(face, NewNode("secondHand"))

	assert.Same(t, hand, root.FindByName("secondHand"))
	assert.Same(t, root, root.FindByName("root"))
	assert.Nil(t, root.FindByName("missing"))
}

func TestWalk_ChainsWorldMatricesAndSkipsHidden(t *testing.T) {
	root := NewNode("root")
	root.Position = mathutil.Vec3{1, 0, 0}
	child := NewNode("child")
	child.Position = mathutil.Vec3{0, 2, 0}
	hidden := NewNode("hidden")
	hidden.Visible = false
	hidden.Add(NewNode("under-hidden"))
	root.Add(child, hidden)

	worlds := map[string]mathutil.Vec3{}
	root.Walk(func(n *Node, w mathutil.Mat4) {
		worlds[n.Name] = w.Translation()
	})

	assert.Equal(t, mathutil.Vec3{1, 0, 0}, worlds["root"])
	assert.Equal(t, mathutil.Vec3{1, 2, 0}, worlds["child"])
	assert.NotContains(t, worlds, "hidden")
	assert.NotContains(t, worlds, "under-hidden")
	assert.Equal(t, worlds["child"], child.WorldMatrix().Translation())
}

func TestScene_MeshCount(t *testing.T) {
	s := New(color.NRGBA{A: 255})
	g := NewNode("group")
	g.Add(NewMesh("box", geometry.Box(1, 1, 1), &Material{}))
	s.Add(g, NewMesh("ball", geometry.Sphere(1, 8, 4), &Material{}))

	assert.Equal(t, 2, s.MeshCount())
}
