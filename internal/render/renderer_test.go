package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molforge/internal/domain/chem"
)

func parse(t *testing.T, smiles string) *chem.Molecule {
	t.Helper()
	mol, err := chem.ParseSMILES(smiles)
	require.NoError(t, err)
	return mol
}

func TestDepict_CanvasSizeAndBackground(t *testing.T) {
	t.Parallel()

	img, err := NewRenderer().Depict(parse(t, "c1ccccc1"), 300, 200)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 300, bounds.Dx())
	assert.Equal(t, 200, bounds.Dy())

	// Corners stay untouched white canvas.
	r, g, b, _ := img.At(1, 1).RGBA()
	white := color.White
	wr, wg, wb, _ := white.RGBA()
	assert.Equal(t, wr, r)
	assert.Equal(t, wg, g)
	assert.Equal(t, wb, b)
}

func TestDepict_DrawsInk(t *testing.T) {
	t.Parallel()

	img, err := NewRenderer().Depict(parse(t, "c1ccccc1Cc1cnccc1"), 300, 200)
	require.NoError(t, err)

	inked := 0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r < 0xf000 || g < 0xf000 || b < 0xf000 {
				inked++
			}
		}
	}
	assert.Greater(t, inked, 100, "depiction must draw visible structure")
}

func TestDepict_SingleAtom(t *testing.T) {
	t.Parallel()

	img, err := NewRenderer().Depict(parse(t, "O"), 64, 64)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestDepict_Rejections(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	_, err := r.Depict(nil, 300, 200)
	assert.Error(t, err)

	_, err = r.Depict(&chem.Molecule{}, 300, 200)
	assert.Error(t, err)

	_, err = r.Depict(parse(t, "C"), 4, 4)
	assert.Error(t, err)
}

func TestLayout_IsDeterministic(t *testing.T) {
	t.Parallel()

	mol := parse(t, "c1ccccc1Oc1ccccc1")
	first := layout(mol)
	second := layout(mol)
	assert.Equal(t, first, second)
}

func TestLayout_RingStaysRegular(t *testing.T) {
	t.Parallel()

	// Benzene starts as a regular hexagon; the symmetric force model must
	// preserve equal bond lengths.
	mol := parse(t, "c1ccccc1")
	pos := layout(mol)

	lengths := make([]float64, 0, len(mol.Bonds))
	for _, b := range mol.Bonds {
		dx := pos[b.To].X - pos[b.From].X
		dy := pos[b.To].Y - pos[b.From].Y
		lengths = append(lengths, dx*dx+dy*dy)
	}
	require.NotEmpty(t, lengths)
	for _, l := range lengths[1:] {
		assert.InDelta(t, lengths[0], l, 1e-6)
	}
	assert.Greater(t, lengths[0], 0.1)
}
