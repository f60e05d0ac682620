// Package gallery provides a registry of named demo models. The models
// double as end-to-end exercises of the solid algebra: engraved text,
// dominant negatives, rounded boxes, repeated pockets, and split
// enclosures.
package gallery

import (
	"sort"

	"github.com/matzehuels/scadkit/pkg/errors"
	"github.com/matzehuels/scadkit/pkg/parts"
	"github.com/matzehuels/scadkit/pkg/solid"
	"github.com/matzehuels/scadkit/pkg/vector"
)

// Model is a named, self-contained demo design.
type Model struct {
	Name        string
	Description string
	Build       func(b *solid.Builder) (*solid.Solid, error)
}

var registry = map[string]Model{
	"dice": {
		Name:        "dice",
		Description: "a die with engraved digits on all six faces",
		Build:       dice,
	},
	"pipes": {
		Name:        "pipes",
		Description: "a pipe crossing kept open by dominant negative bores",
		Build:       pipes,
	},
	"enclosure": {
		Name:        "enclosure",
		Description: "a two-part project enclosure with screw columns",
		Build:       enclosure,
	},
	"sign": {
		Name:        "sign",
		Description: "a name plate with raised, resized text",
		Build:       sign,
	},
	"tray": {
		Name:        "tray",
		Description: "a rounded tray with two pockets",
		Build:       tray,
	},
}

// Models returns all demo models sorted by name.
func Models() []Model {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	models := make([]Model, len(names))
	for i, name := range names {
		models[i] = registry[name]
	}
	return models
}

// Lookup returns the demo model with the given name.
func Lookup(name string) (Model, error) {
	m, ok := registry[name]
	if !ok {
		return Model{}, errors.New(errors.ErrCodeModelNotFound, "unknown model %q", name)
	}
	return m, nil
}

// dice builds a 30mm die with rounded edges and a digit engraved into
// each face.
func dice(b *solid.Builder) (*solid.Solid, error) {
	const (
		size     = 30.0
		rounding = 3.0
		depth    = 1.0
	)

	// A digit centered on a face, extruded so it can be sunk into it.
	digit := func(txt string) *solid.Solid {
		return solid.Translate(vector.XY(size/2, size/2)).Apply(
			b.Extrude(depth).Apply(
				b.Text(txt,
					solid.WithHeight(0.4*size),
					solid.WithArgs("halign='center', valign='center'"))))
	}

	engravings := solid.Union(
		solid.Translate(vector.Right(size)).Apply(
			solid.Mirror(1, 0, 0).Apply(digit("1"))),
		solid.Translate(vector.XYZ(size, size-depth, 0)).Apply(
			solid.Rotate(90, 0, 180).Apply(digit("2"))),
		solid.Translate(vector.XYZ(size-depth, 0, size)).Apply(
			solid.Rotate(0, 90, 0).Apply(digit("3"))),
		solid.Translate(vector.Right(depth)).Apply(
			solid.Rotate(0, -90, 0).Apply(digit("4"))),
		solid.Translate(vector.Back(depth)).Apply(
			solid.Rotate(90, 0, 0).Apply(digit("5"))),
		solid.Translate(vector.Up(size-depth)).Apply(digit("6")),
	)

	body := b.BoxVec(vector.Dup3(size), solid.WithRounding(rounding))
	return body.Difference(engravings), nil
}

// pipes builds two crossing pipes whose bores are dominant negatives, so
// neither pipe's wall blocks the other. The crossing is neutralized before
// the axle is added, so the axle survives.
func pipes(b *solid.Builder) (*solid.Solid, error) {
	const (
		radius = 10.0
		length = 30.0
		wall   = 1.0
	)

	pipe := func() (*solid.Solid, error) {
		outer, err := b.Cylinder(length, solid.Radius(radius))
		if err != nil {
			return nil, err
		}
		bore, err := b.Cylinder(length, solid.Radius(radius-wall))
		if err != nil {
			return nil, err
		}
		return outer.Difference(solid.Negative().Apply(bore)), nil
	}

	p, err := pipe()
	if err != nil {
		return nil, err
	}
	p = solid.Translate(vector.Down(length / 2)).Apply(p)
	crossing := p.Union(solid.Rotate(90, 0, 0).Apply(p))

	axle, err := b.Cylinder(length, solid.Radius(2))
	if err != nil {
		return nil, err
	}
	axle = solid.Translate(vector.XYZ(0, -12, -length/2)).Apply(axle)

	return solid.Positive().Apply(crossing).Union(axle), nil
}

// enclosure builds a 50x35x20 project box with a screw column in each
// corner, split into a bottom tub and a flipped lid.
func enclosure(b *solid.Builder) (*solid.Solid, error) {
	var (
		size  = vector.XYZ(50, 35, 20)
		wall  = 2.0
		screw = parts.M3x12
	)

	box := parts.HollowBox(b, size, parts.WithWall(wall), parts.WithRounding(1))

	z, _ := size.Z()
	column, err := parts.ScrewAndNutColumn(b, z, screw, parts.WithWall(wall))
	if err != nil {
		return nil, err
	}

	// One column per corner, inset by the column's outer radius.
	inset := wall + screw.Diameter
	columns := solid.Translate(vector.Dup2(inset)).Apply(
		solid.Repeat4(vector.XY(size.X()-2*inset, size.Y()-2*inset)).Apply(column))

	return parts.SplitBox(b, box.Union(columns), size, z/2, parts.WithWall(wall))
}

// sign builds a rounded name plate with raised text resized to fit it.
func sign(b *solid.Builder) (*solid.Solid, error) {
	var (
		plate = vector.XYZ(60, 20, 3)
		// Text area leaves a 5mm margin on every side.
		area = vector.XY(50, 10)
	)

	base := b.BoxVec(plate, solid.WithRounding(1))
	raised := solid.Translate(vector.XYZ(5, 5, 2)).Apply(
		b.Extrude(2).Apply(
			solid.Resize(area).Apply(
				b.Text("scadkit"))))
	return base.Union(raised), nil
}

// tray builds a rounded tray with two pockets separated by an inner wall.
func tray(b *solid.Builder) (*solid.Solid, error) {
	var (
		size = vector.XYZ(60, 40, 15)
		wall = 2.0
	)

	x, y := size.X(), size.Y()
	z, _ := size.Z()

	// Pockets pierce the top so the tray stays open.
	pocketW := (x - 3*wall) / 2
	pocket := b.Box(pocketW, y-2*wall, z)
	pockets := solid.Translate(vector.Dup3(wall)).Apply(
		solid.Repeat2(vector.Right(pocketW + wall)).Apply(pocket))

	body := b.BoxVec(size, solid.WithRounding(1.5))
	return body.Difference(pockets), nil
}
