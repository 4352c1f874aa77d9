package generator

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molforge/internal/domain/chem"
	"github.com/turtacn/molforge/internal/domain/library"
	"github.com/turtacn/molforge/pkg/errors"
	mtypes "github.com/turtacn/molforge/pkg/types/molecule"
)

// stubToolkit accepts exactly the SMILES strings in valid, reporting the
// mapped weight, and rejects everything else.
type stubToolkit struct {
	valid map[string]float64
}

func (s *stubToolkit) Parse(smiles string) (*chem.Molecule, error) {
	if _, ok := s.valid[smiles]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidSMILES, "rejected by stub")
	}
	return &chem.Molecule{SMILES: smiles, Atoms: []chem.Atom{{Symbol: "C"}}}, nil
}

func (s *stubToolkit) MolecularWeight(m *chem.Molecule) float64 { return s.valid[m.SMILES] }
func (s *stubToolkit) LogP(*chem.Molecule) float64              { return 0 }
func (s *stubToolkit) TPSA(*chem.Molecule) float64              { return 0 }
func (s *stubToolkit) HAcceptorCount(*chem.Molecule) int        { return 0 }
func (s *stubToolkit) HDonorCount(*chem.Molecule) int           { return 0 }
func (s *stubToolkit) Render2D(*chem.Molecule, int, int) (image.Image, error) {
	return nil, errors.New(errors.ErrCodeRenderFailed, "stub does not render")
}

func TestGenerate_InputValidation(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubToolkit{}, WithSeed(1))
	ctx := context.Background()

	_, err := svc.Generate(ctx, nil, []string{"C"}, 10)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLibraryEmpty))

	_, err = svc.Generate(ctx, []string{"c1ccccc1"}, nil, 10)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLibraryEmpty))

	_, err = svc.Generate(ctx, []string{"c1ccccc1"}, []string{"C"}, 0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCountOutOfRange))
}

func TestGenerate_WeightBoundsHold(t *testing.T) {
	t.Parallel()

	lib := library.Curated()
	svc := NewService(chem.NewToolkit(nil), WithSeed(42))

	result, err := svc.Generate(context.Background(), lib.Fragments(), lib.Linkers(), 50)
	require.NoError(t, err)

	for _, rec := range result.Molecules {
		assert.GreaterOrEqual(t, rec.Descriptors.Weight, mtypes.MinDrugLikeWeight, rec.SMILES)
		assert.LessOrEqual(t, rec.Descriptors.Weight, mtypes.MaxDrugLikeWeight, rec.SMILES)
	}
}

func TestGenerate_NeverExceedsRequestedCount(t *testing.T) {
	t.Parallel()

	lib := library.Curated()
	svc := NewService(chem.NewToolkit(nil), WithSeed(7))

	for _, count := range []int{1, 5, 20} {
		result, err := svc.Generate(context.Background(), lib.Fragments(), lib.Linkers(), count)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(result.Molecules), count)
		assert.Equal(t, count, result.Requested)
	}
}

func TestGenerate_IdentifiersAreDenseAndOrdered(t *testing.T) {
	t.Parallel()

	lib := library.Curated()
	svc := NewService(chem.NewToolkit(nil), WithSeed(11))

	result, err := svc.Generate(context.Background(), lib.Fragments(), lib.Linkers(), 30)
	require.NoError(t, err)
	require.NotEmpty(t, result.Molecules, "seeded run over the curated library yields at least one molecule")

	for i, rec := range result.Molecules {
		assert.Equal(t, fmt.Sprintf("MOL_%d", i+1), rec.ID)
	}
}

func TestGenerate_SeededRunsAreReproducible(t *testing.T) {
	t.Parallel()

	lib := library.Curated()
	run := func(seed int64) *ResultSet {
		svc := NewService(chem.NewToolkit(nil), WithSeed(seed))
		result, err := svc.Generate(context.Background(), lib.Fragments(), lib.Linkers(), 25)
		require.NoError(t, err)
		return result
	}

	first := run(99)
	second := run(99)
	require.Equal(t, len(first.Molecules), len(second.Molecules))
	for i := range first.Molecules {
		assert.Equal(t, first.Molecules[i], second.Molecules[i])
	}
}

func TestGenerate_PriorityOrderShortCircuits(t *testing.T) {
	t.Parallel()

	// Only pattern (c), frag1+linker, is valid and in range; patterns (a) and
	// (b) produce a different string and must be rejected first.
	tk := &stubToolkit{valid: map[string]float64{"F1LK": 200}}
	svc := NewService(tk, WithSeed(3))

	result, err := svc.Generate(context.Background(), []string{"F1"}, []string{"LK"}, 1)
	require.NoError(t, err)
	require.Len(t, result.Molecules, 1)
	assert.Equal(t, "F1LK", result.Molecules[0].SMILES)
	assert.Equal(t, "MOL_1", result.Molecules[0].ID)
}

func TestGenerate_AllInvalidYieldsEmptySet(t *testing.T) {
	t.Parallel()

	tk := &stubToolkit{valid: map[string]float64{}}
	svc := NewService(tk, WithSeed(5))

	result, err := svc.Generate(context.Background(), []string{"AAA", "BBB"}, []string{"X"}, 20)
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Empty(t, result.Molecules)
}

func TestGenerate_WeightBoundaryIsInclusive(t *testing.T) {
	t.Parallel()

	for _, weight := range []float64{150.00, 500.00} {
		tk := &stubToolkit{valid: map[string]float64{"F1LKF1": weight}}
		svc := NewService(tk, WithSeed(1))

		result, err := svc.Generate(context.Background(), []string{"F1"}, []string{"LK"}, 1)
		require.NoError(t, err)
		require.Len(t, result.Molecules, 1, "weight %.2f must be accepted", weight)
		assert.Equal(t, weight, result.Molecules[0].Descriptors.Weight)
	}
}

func TestGenerate_WeightJustOutsideWindowIsRejected(t *testing.T) {
	t.Parallel()

	for _, weight := range []float64{149.99, 500.01} {
		tk := &stubToolkit{valid: map[string]float64{"F1LKF1": weight}}
		svc := NewService(tk, WithSeed(1))

		result, err := svc.Generate(context.Background(), []string{"F1"}, []string{"LK"}, 1)
		require.NoError(t, err)
		assert.True(t, result.Empty(), "weight %.2f must be rejected", weight)
	}
}

func TestGenerate_UnderweightSlotsAreDropped(t *testing.T) {
	t.Parallel()

	// With benzene and a carbonyl linker every two-fragment pattern violates
	// oxygen valence and the surviving single-fragment patterns sit far below
	// the weight window, so every slot drops.
	svc := NewService(chem.NewToolkit(nil), WithSeed(2))

	result, err := svc.Generate(context.Background(), []string{"c1ccccc1"}, []string{"C=O"}, 15)
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestGenerate_InertLinkerNeverContributes(t *testing.T) {
	t.Parallel()

	// "NH" cannot be parsed in any concatenation, so a library with only that
	// linker yields nothing.
	svc := NewService(chem.NewToolkit(nil), WithSeed(4))

	result, err := svc.Generate(context.Background(), library.Curated().Fragments(), []string{"NH"}, 10)
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestGenerate_DuplicatesAreLegal(t *testing.T) {
	t.Parallel()

	// A single fragment/linker pair yields the same accepted SMILES in every
	// slot; each occurrence keeps its own identifier.
	tk := &stubToolkit{valid: map[string]float64{"F1LKF1": 300}}
	svc := NewService(tk, WithSeed(6))

	result, err := svc.Generate(context.Background(), []string{"F1"}, []string{"LK"}, 5)
	require.NoError(t, err)
	require.Len(t, result.Molecules, 5)

	seen := map[string]bool{}
	for i, rec := range result.Molecules {
		assert.Equal(t, "F1LKF1", rec.SMILES)
		assert.False(t, seen[rec.ID], "identifier %s repeated", rec.ID)
		seen[rec.ID] = true
		assert.Equal(t, fmt.Sprintf("MOL_%d", i+1), rec.ID)
	}
}

func TestGenerate_CancelledContextStopsRun(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(chem.NewToolkit(nil), WithSeed(1))
	_, err := svc.Generate(ctx, []string{"c1ccccc1"}, []string{"C"}, 10)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
}

func TestGenerate_ConcurrentCallsAreSafe(t *testing.T) {
	t.Parallel()

	lib := library.Curated()
	svc := NewService(chem.NewToolkit(nil), WithSeed(8))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.Generate(context.Background(), lib.Fragments(), lib.Linkers(), 10)
			assert.NoError(t, err)
			assert.LessOrEqual(t, len(result.Molecules), 10)
		}()
	}
	wg.Wait()
}

func TestGenerate_AcceptedSMILESContainDrawnMaterial(t *testing.T) {
	t.Parallel()

	lib := library.Curated()
	svc := NewService(chem.NewToolkit(nil), WithSeed(13))

	result, err := svc.Generate(context.Background(), lib.Fragments(), lib.Linkers(), 40)
	require.NoError(t, err)

	// Every accepted string is a concatenation over the library, so it must
	// contain at least one curated fragment.
	for _, rec := range result.Molecules {
		found := false
		for _, frag := range lib.Fragments() {
			if strings.Contains(rec.SMILES, frag) {
				found = true
				break
			}
		}
		assert.True(t, found, rec.SMILES)
	}
}

func TestCandidatePatterns_FixedOrder(t *testing.T) {
	t.Parallel()

	patterns := candidatePatterns("A", "B", "x")
	assert.Equal(t, [6]string{"AxB", "BxA", "Ax", "Bx", "xAB", "xBA"}, patterns)
}
