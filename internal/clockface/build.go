package clockface

import (
	"image"
	"image/color"
	"math"

	"clock3d/internal/geometry"
	"clock3d/internal/mathutil"
	"clock3d/internal/pivot"
	"clock3d/internal/scene"
)

// Dimensions fixes the clock geometry. Everything else is derived from it.
type Dimensions struct {
	Radius float64
	Depth  float64
}

// DefaultDimensions is a clock of radius 5 and depth 1.
func DefaultDimensions() Dimensions {
	return Dimensions{Radius: 5, Depth: 1}
}

func (d Dimensions) SecondLength() float64 { return d.Radius - 0.1 }
func (d Dimensions) MinuteLength() float64 { return d.Radius / 2 }
func (d Dimensions) HourLength() float64   { return d.Radius / 4 }

// Mounts holds the three hand rigs of a face.
type Mounts struct {
	Second pivot.Mount
	Minute pivot.Mount
	Hour   pivot.Mount
}

// Mounts derives the hand rigs. Second and minute hands share a pivot and a
// placement; the hour hand sits slightly proud of them on its own pivot.
func (d Dimensions) Mounts() Mounts {
	front := d.Depth / 2
	long := pivot.NewMount(
		mathutil.Vec3{0, -(d.Radius - 0.1/2) / 2, front},
		mathutil.Vec3{0, d.SecondLength() / 2, front},
		nil,
	)

	minuteScale := mathutil.Mat4Scale(0.05, 1, 0.025)
	minute := long
	minute.Scale = &minuteScale

	hourZ := front + 0.05*d.Radius/2
	hourScale := mathutil.Mat4Scale(0.1, 1, 0.05)
	hour := pivot.NewMount(
		mathutil.Vec3{0, -d.HourLength(), hourZ},
		mathutil.Vec3{0, d.HourLength(), hourZ},
		&hourScale,
	)

	return Mounts{Second: long, Minute: minute, Hour: hour}
}

var (
	bodyColor   = color.NRGBA{0x9b, 0x82, 0x92, 0xff}
	tickColor   = color.NRGBA{0xff, 0xc0, 0xcb, 0xff} // pink
	twelveColor = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	secondColor = color.NRGBA{0x00, 0x00, 0x00, 0xff}
	minuteColor = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	hourColor   = color.NRGBA{0x00, 0x00, 0xff, 0xff}
)

const (
	discSegments = 100
	tickLength   = 0.3
	tickWidth    = 0.05
	tickDepth    = 0.01
)

func bodyMaterial() *scene.Material {
	return &scene.Material{Color: bodyColor, Metalness: 0.1, Roughness: 0.5}
}

// NewBody returns the cylinder both faces are mounted on, turned so its axis
// runs along Z and its caps sit at z = ±depth/2.
func NewBody(d Dimensions) *scene.Node {
	body := scene.NewMesh("body", geometry.Cylinder(d.Radius, d.Radius, d.Depth, discSegments), bodyMaterial())
	body.Rotation = mathutil.Vec3{math.Pi / 2, 0, 0}
	return body
}

// Options configures one face.
type Options struct {
	Name          string
	TZOffsetHours float64
	// Yaw turns the whole face about the vertical axis, e.g. π for a face on
	// the back of the body.
	Yaw         float64
	DialTexture *image.NRGBA
	Dimensions  Dimensions
}

// New assembles a face subtree (dial, ticks, bezel, blob and hands) and binds it.
func New(opts Options) (*Face, error) {
	d := opts.Dimensions
	if d.Radius <= 0 || d.Depth <= 0 {
		d = DefaultDimensions()
	}
	root := scene.NewNode(opts.Name)
	root.SetMatrix(mathutil.FromMat3Translation(mathutil.RotY(opts.Yaw), mathutil.Vec3{}))

	dialMat := bodyMaterial()
	dialMat.Texture = opts.DialTexture
	dial := scene.NewMesh(NameDial, geometry.Disc(d.Radius, discSegments), dialMat)
	dial.Position = mathutil.Vec3{0, 0, d.Depth/2 + 0.002}
	root.Add(dial)

	root.Add(ticks(d)...)

	root.Add(scene.NewMesh("bezel",
		geometry.ExtrudedRing(d.Radius, d.Radius+0.2, 0.6*d.Depth, discSegments), bodyMaterial()))

	blob := scene.NewMesh("blob", geometry.Sphere(0.3, 32, 16), bodyMaterial())
	blob.Position = mathutil.Vec3{0, 0, d.Depth / 2}
	blob.Scale = mathutil.Vec3{1, 1, 0.5}
	root.Add(blob)

	root.Add(
		scene.NewMesh(NameSecond, geometry.Box(0.1, d.SecondLength(), 0.05),
			&scene.Material{Color: secondColor, Unlit: true}),
		scene.NewMesh(NameMinute, geometry.Sphere(d.MinuteLength(), 32, 16),
			&scene.Material{Color: minuteColor, Metalness: 1, Roughness: 0.2}),
		scene.NewMesh(NameHour, geometry.Sphere(d.HourLength(), 32, 16),
			&scene.Material{Color: hourColor, Metalness: 1, Roughness: 0.2}),
	)

	f, err := Bind(opts.Name, root, d.Mounts(), opts.TZOffsetHours)
	if err != nil {
		return nil, err
	}
	// Neutral pose until the first tick.
	Update(f, WallTime{Hours: opts.TZOffsetHours}, opts.TZOffsetHours)
	return f, nil
}

// ticks lays out 60 minute ticks and 12 hour ticks, starting at 12 o'clock and
// going clockwise.
func ticks(d Dimensions) []*scene.Node {
	small := geometry.Box(tickLength, tickWidth, tickDepth)
	big := geometry.Box(2*tickLength, 2*tickWidth, 2*tickDepth)
	plain := &scene.Material{Color: tickColor, Unlit: true}
	twelve := &scene.Material{Color: twelveColor, Unlit: true}

	radius := d.Radius - 1.5*tickLength
	angle := math.Pi / 2
	step := -math.Pi / 30

	var out []*scene.Node
	for i := 0; i < 60; i++ {
		pos := mathutil.Vec3{radius * math.Cos(angle), radius * math.Sin(angle), d.Depth / 2}

		t := scene.NewMesh("tick", small, plain)
		t.Position = pos
		t.Rotation = mathutil.Vec3{0, 0, angle}
		out = append(out, t)

		if i%5 == 0 {
			mat := plain
			if i == 0 {
				mat = twelve
			}
			b := scene.NewMesh("hourTick", big, mat)
			b.Position = pos
			b.Rotation = mathutil.Vec3{0, 0, angle}
			out = append(out, b)
		}
		angle += step
	}
	return out
}

// BuildScene assembles the body and one face per option into a fresh scene.
func BuildScene(background color.NRGBA, d Dimensions, faces []Options) (*scene.Scene, []*Face, error) {
	s := scene.New(background)
	s.Add(NewBody(d))

	out := make([]*Face, 0, len(faces))
	for _, opts := range faces {
		opts.Dimensions = d
		f, err := New(opts)
		if err != nil {
			return nil, nil, err
		}
		s.Add(f.Root)
		out = append(out, f)
	}
	return s, out, nil
}
