// Package chem provides the chemistry toolkit for MolForge: a SMILES parser
// for the organic subset, physicochemical descriptor calculators, and the
// Toolkit interface the generation pipeline is written against.
//
// The package is deliberately dependency-free at the domain level so that the
// generator and presentation layers can be tested with lightweight stubs.
package chem

import "image"

// ─────────────────────────────────────────────────────────────────────────────
// Structural Model
// ─────────────────────────────────────────────────────────────────────────────

// BondOrder enumerates the bond types representable in the supported SMILES
// subset.  Aromatic bonds are kept distinct rather than kekulised.
type BondOrder int

const (
	BondSingle BondOrder = iota + 1
	BondDouble
	BondTriple
	BondAromatic
)

// valenceUnits returns the valence contribution of the bond order.
// Aromatic bonds contribute 1 unit; the extra aromatic electron is accounted
// for separately during implicit-hydrogen assignment.
func (b BondOrder) valenceUnits() int {
	switch b {
	case BondDouble:
		return 2
	case BondTriple:
		return 3
	default:
		return 1
	}
}

// Atom is a single heavy atom in a parsed molecule.  Hydrogens are never
// stored as graph nodes; they live in the ExplicitH and ImplicitH counts.
type Atom struct {
	// Symbol is the normalised element symbol, e.g. "C", "N", "Cl".
	Symbol string

	// Aromatic is true for atoms written in lowercase aromatic form.
	Aromatic bool

	// Charge is the formal charge from a bracket expression, zero otherwise.
	Charge int

	// Isotope is the isotope number from a bracket expression, zero when
	// unspecified.
	Isotope int

	// ExplicitH is the hydrogen count written inside a bracket expression,
	// e.g. 1 for [nH].  Meaningful only when HSpecified is true.
	ExplicitH  int
	HSpecified bool

	// ImplicitH is computed during parsing from the atom's default valence
	// and its bond order sum.  Always zero when HSpecified is true.
	ImplicitH int
}

// HydrogenCount returns the total hydrogen count attached to the atom.
func (a Atom) HydrogenCount() int {
	if a.HSpecified {
		return a.ExplicitH
	}
	return a.ImplicitH
}

// Bond connects two atoms by index into the owning molecule's Atoms slice.
type Bond struct {
	From  int
	To    int
	Order BondOrder
}

// Molecule is a parsed, valence-validated molecular graph.  Instances are
// immutable after parsing; descriptor calculators only read them.
type Molecule struct {
	// SMILES is the input string the molecule was parsed from, unmodified.
	SMILES string

	Atoms []Atom
	Bonds []Bond
}

// HeavyAtomCount returns the number of non-hydrogen atoms.
func (m *Molecule) HeavyAtomCount() int { return len(m.Atoms) }

// Neighbors returns the indices of atoms bonded to atom i.
func (m *Molecule) Neighbors(i int) []int {
	var out []int
	for _, b := range m.Bonds {
		switch i {
		case b.From:
			out = append(out, b.To)
		case b.To:
			out = append(out, b.From)
		}
	}
	return out
}

// bondOrderSum returns the total valence units consumed by bonds at atom i.
func (m *Molecule) bondOrderSum(i int) int {
	sum := 0
	for _, b := range m.Bonds {
		if b.From == i || b.To == i {
			sum += b.Order.valenceUnits()
		}
	}
	return sum
}

// hasBondOfOrder reports whether atom i participates in a bond of the given
// order.  Used by the TPSA classifier to distinguish carbonyl from ether
// oxygens.
func (m *Molecule) hasBondOfOrder(i int, order BondOrder) bool {
	for _, b := range m.Bonds {
		if (b.From == i || b.To == i) && b.Order == order {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Toolkit Interface
// ─────────────────────────────────────────────────────────────────────────────

// Toolkit is the chemistry backend the generation pipeline depends on.
// The production implementation is NewToolkit; tests substitute stubs to
// exercise filtering and error paths deterministically.
type Toolkit interface {
	// Parse converts a SMILES string into a validated molecular graph.
	// It returns a CHEM-coded error for syntactically or chemically invalid
	// input; a nil error guarantees a usable *Molecule.
	Parse(smiles string) (*Molecule, error)

	// MolecularWeight returns the average molecular weight in Daltons,
	// including implicit hydrogens.
	MolecularWeight(mol *Molecule) float64

	// LogP returns an atom-contribution estimate of the octanol/water
	// partition coefficient.
	LogP(mol *Molecule) float64

	// TPSA returns the topological polar surface area in square Angstroms.
	TPSA(mol *Molecule) float64

	// HAcceptorCount returns the hydrogen bond acceptor count.
	HAcceptorCount(mol *Molecule) int

	// HDonorCount returns the hydrogen bond donor count.
	HDonorCount(mol *Molecule) int

	// Render2D draws a schematic 2D depiction of the molecule at the given
	// pixel dimensions.
	Render2D(mol *Molecule, width, height int) (image.Image, error)
}

// Depictor produces 2D depictions of molecular graphs.  It is defined here so
// the drawing backend can live in a separate package without an import cycle.
type Depictor interface {
	Depict(mol *Molecule, width, height int) (image.Image, error)
}
