package render

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/turtacn/molforge/internal/domain/chem"
	"github.com/turtacn/molforge/pkg/errors"
)

// elementColors maps heteroatom symbols to their conventional CPK-ish draw
// colours.  Carbon is never labelled.
var elementColors = map[string][3]float64{
	"N":  {0.10, 0.10, 0.90},
	"O":  {0.90, 0.10, 0.10},
	"S":  {0.75, 0.65, 0.05},
	"P":  {0.90, 0.50, 0.10},
	"F":  {0.10, 0.70, 0.25},
	"Cl": {0.10, 0.60, 0.20},
	"Br": {0.55, 0.25, 0.10},
	"I":  {0.45, 0.10, 0.55},
	"B":  {0.80, 0.55, 0.45},
}

// Renderer draws schematic depictions of molecular graphs.  It satisfies the
// toolkit's Depictor interface.
type Renderer struct{}

// NewRenderer returns a ready Renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Depict draws the molecule onto a white canvas of the given size.
func (r *Renderer) Depict(mol *chem.Molecule, width, height int) (image.Image, error) {
	if mol == nil || len(mol.Atoms) == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "cannot depict empty molecule")
	}
	if width < 16 || height < 16 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "canvas too small")
	}

	margin := math.Min(float64(width), float64(height)) * 0.12
	coords := fitToCanvas(layout(mol), width, height, margin)

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, bond := range mol.Bonds {
		drawBond(dc, coords[bond.From], coords[bond.To], bond.Order)
	}
	for i, atom := range mol.Atoms {
		drawAtom(dc, coords[i], atom)
	}

	return dc.Image(), nil
}

// drawBond strokes one bond: parallel lines for double/triple orders, a
// dashed companion line for aromatic bonds.
func drawBond(dc *gg.Context, a, b point, order chem.BondOrder) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		return
	}
	// Unit normal for offsetting parallel strokes.
	nx, ny := -dy/length, dx/length
	const gap = 2.5

	dc.SetRGB(0.15, 0.15, 0.15)
	dc.SetLineWidth(1.6)

	line := func(offset float64) {
		dc.DrawLine(a.X+nx*offset, a.Y+ny*offset, b.X+nx*offset, b.Y+ny*offset)
		dc.Stroke()
	}

	switch order {
	case chem.BondDouble:
		line(-gap / 2)
		line(gap / 2)
	case chem.BondTriple:
		line(-gap)
		line(0)
		line(gap)
	case chem.BondAromatic:
		line(0)
		dc.SetDash(3, 3)
		line(gap * 1.4)
		dc.SetDash()
	default:
		line(0)
	}
}

// drawAtom labels heteroatoms with their element symbol on a cleared disc;
// carbons stay implicit as line vertices.
func drawAtom(dc *gg.Context, p point, atom chem.Atom) {
	rgb, labelled := elementColors[atom.Symbol]
	if !labelled {
		return
	}

	dc.SetRGB(1, 1, 1)
	dc.DrawCircle(p.X, p.Y, 7)
	dc.Fill()

	label := atom.Symbol
	if atom.Symbol == "N" && atom.HydrogenCount() > 0 {
		label = "NH"
	}
	if atom.Symbol == "O" && atom.HydrogenCount() > 0 {
		label = "OH"
	}

	dc.SetRGB(rgb[0], rgb[1], rgb[2])
	dc.DrawStringAnchored(label, p.X, p.Y, 0.5, 0.5)
}
