// Package render produces schematic 2D raster depictions of molecular
// graphs.  The layout is a small force-directed embedding, good enough to
// show connectivity and ring shapes; it makes no claim to publication-grade
// structure diagrams.
package render

import (
	"math"

	"github.com/turtacn/molforge/internal/domain/chem"
)

const (
	layoutIterations = 300
	idealBondLength  = 1.0
	springStrength   = 0.12
	repelStrength    = 0.45
	maxStep          = 0.08
)

type point struct {
	X, Y float64
}

// layout computes deterministic 2D coordinates for the molecule.  Atoms start
// on a circle in graph order and relax under bond springs and pairwise
// repulsion, which pulls rings into near-regular polygons.
func layout(mol *chem.Molecule) []point {
	n := len(mol.Atoms)
	pos := make([]point, n)
	if n == 0 {
		return pos
	}
	if n == 1 {
		return pos
	}

	// Deterministic initial placement: one full turn in atom order.
	radius := idealBondLength * float64(n) / (2 * math.Pi)
	for i := range pos {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pos[i] = point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}

	disp := make([]point, n)
	for iter := 0; iter < layoutIterations; iter++ {
		for i := range disp {
			disp[i] = point{}
		}

		// Pairwise repulsion keeps non-bonded atoms apart.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := pos[i].X - pos[j].X
				dy := pos[i].Y - pos[j].Y
				d2 := dx*dx + dy*dy
				if d2 < 1e-6 {
					d2 = 1e-6
					dx = 1e-3 * float64(i-j)
				}
				f := repelStrength / d2
				d := math.Sqrt(d2)
				fx, fy := f*dx/d, f*dy/d
				disp[i].X += fx
				disp[i].Y += fy
				disp[j].X -= fx
				disp[j].Y -= fy
			}
		}

		// Bond springs pull connected atoms to the ideal length.
		for _, b := range mol.Bonds {
			dx := pos[b.To].X - pos[b.From].X
			dy := pos[b.To].Y - pos[b.From].Y
			d := math.Hypot(dx, dy)
			if d < 1e-6 {
				continue
			}
			f := springStrength * (d - idealBondLength)
			fx, fy := f*dx/d, f*dy/d
			disp[b.From].X += fx
			disp[b.From].Y += fy
			disp[b.To].X -= fx
			disp[b.To].Y -= fy
		}

		for i := range pos {
			step := math.Hypot(disp[i].X, disp[i].Y)
			if step > maxStep {
				disp[i].X *= maxStep / step
				disp[i].Y *= maxStep / step
			}
			pos[i].X += disp[i].X
			pos[i].Y += disp[i].Y
		}
	}

	return pos
}

// fitToCanvas maps layout coordinates onto pixel space with a uniform scale
// and the given margin, preserving aspect ratio and centring the drawing.
func fitToCanvas(pos []point, width, height int, margin float64) []point {
	out := make([]point, len(pos))
	if len(pos) == 0 {
		return out
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pos {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	availW := float64(width) - 2*margin
	availH := float64(height) - 2*margin

	scale := 1.0
	if rangeX > 1e-9 || rangeY > 1e-9 {
		scale = math.Min(availW/math.Max(rangeX, 1e-9), availH/math.Max(rangeY, 1e-9))
	}

	offsetX := (float64(width) - rangeX*scale) / 2
	offsetY := (float64(height) - rangeY*scale) / 2
	for i, p := range pos {
		out[i] = point{
			X: (p.X-minX)*scale + offsetX,
			Y: (p.Y-minY)*scale + offsetY,
		}
	}
	return out
}
