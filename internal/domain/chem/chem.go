package chem

import (
	"image"

	"github.com/turtacn/molforge/pkg/errors"
)

// toolkit is the production Toolkit implementation.  Parsing and descriptors
// are self-contained; 2D depiction is delegated to an injected Depictor so
// the drawing backend stays out of the domain layer.
type toolkit struct {
	depictor Depictor
}

// NewToolkit returns the production chemistry toolkit.  The depictor may be
// nil for callers that never render, such as the CSV-only CLI path; Render2D
// then fails with a CHEM-coded error instead of panicking.
func NewToolkit(depictor Depictor) Toolkit {
	return &toolkit{depictor: depictor}
}

func (t *toolkit) Parse(smiles string) (*Molecule, error) {
	return ParseSMILES(smiles)
}

func (t *toolkit) MolecularWeight(mol *Molecule) float64 { return MolecularWeight(mol) }

func (t *toolkit) LogP(mol *Molecule) float64 { return LogP(mol) }

func (t *toolkit) TPSA(mol *Molecule) float64 { return TPSA(mol) }

func (t *toolkit) HAcceptorCount(mol *Molecule) int { return HAcceptorCount(mol) }

func (t *toolkit) HDonorCount(mol *Molecule) int { return HDonorCount(mol) }

func (t *toolkit) Render2D(mol *Molecule, width, height int) (image.Image, error) {
	if t.depictor == nil {
		return nil, errors.New(errors.ErrCodeRenderFailed, "no depictor configured")
	}
	if mol == nil || len(mol.Atoms) == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "cannot render empty molecule")
	}
	return t.depictor.Depict(mol, width, height)
}
