package clockface

import (
	"errors"
	"fmt"

	"clock3d/internal/pivot"
	"clock3d/internal/scene"
)

// Node names a face subtree must provide.
const (
	NameDial   = "dial"
	NameSecond = "secondHand"
	NameMinute = "minuteHand"
	NameHour   = "hourHand"
)

// ErrHandNotFound means a face subtree was assembled without one of its hands.
var ErrHandNotFound = errors.New("clockface: hand not found")

// Hand couples a scene node with the fixed rig it is posed by.
type Hand struct {
	Node  *scene.Node
	Mount pivot.Mount
}

func (h Hand) pose(angle float64) {
	h.Node.SetMatrix(h.Mount.Pose(angle))
}

// Face is one dial with its three hands, resolved to typed handles once.
type Face struct {
	Name          string
	TZOffsetHours float64

	Root   *scene.Node
	Dial   *scene.Node
	Second Hand
	Minute Hand
	Hour   Hand
}

// Bind resolves the hand nodes under root by name and captures them. Every hand
// is switched to manual matrices. A missing hand is a construction error:
// without it the face would render with a frozen hand and no diagnostic.
func Bind(name string, root *scene.Node, mounts Mounts, tzOffsetHours float64) (*Face, error) {
	find := func(node string) (*scene.Node, error) {
		n := root.FindByName(node)
		if n == nil {
			return nil, fmt.Errorf("%w: face %q has no %q", ErrHandNotFound, name, node)
		}
		n.MatrixAutoUpdate = false
		return n, nil
	}

	second, err := find(NameSecond)
	if err != nil {
		return nil, err
	}
	minute, err := find(NameMinute)
	if err != nil {
		return nil, err
	}
	hour, err := find(NameHour)
	if err != nil {
		return nil, err
	}

	return &Face{
		Name:          name,
		TZOffsetHours: tzOffsetHours,
		Root:          root,
		Dial:          root.FindByName(NameDial),
		Second:        Hand{Node: second, Mount: mounts.Second},
		Minute:        Hand{Node: minute, Mount: mounts.Minute},
		Hour:          Hand{Node: hour, Mount: mounts.Hour},
	}, nil
}

// Update writes all three hand transforms of f for the given instant. Each
// matrix is recomputed from scratch; nothing carries over between frames.
func Update(f *Face, now WallTime, tzOffsetHours float64) {
	Apply(f, ComputeAngles(now, tzOffsetHours))
}

// Apply poses the three hands of f at already computed angles.
func Apply(f *Face, a Angles) {
	f.Second.pose(a.Second)
	f.Minute.pose(a.Minute)
	f.Hour.pose(a.Hour)
}
