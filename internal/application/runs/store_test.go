package runs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molforge/pkg/errors"
	mtypes "github.com/turtacn/molforge/pkg/types/molecule"
)

func TestStore_SaveAndGet(t *testing.T) {
	t.Parallel()

	s := NewStore()
	run := s.Save(10, []mtypes.RecordDTO{
		{ID: "MOL_1", SMILES: "c1ccccc1Cc1ccccc1"},
	})

	require.NotEmpty(t, run.ID)
	assert.Equal(t, 10, run.Requested)
	assert.Equal(t, 1, run.Generated())

	got, err := s.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run, got)
}

func TestStore_GetUnknownRun(t *testing.T) {
	t.Parallel()

	_, err := NewStore().Get("nope")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRunNotFound))
	assert.True(t, errors.IsNotFound(err))
}

func TestStore_MoleculeLookup(t *testing.T) {
	t.Parallel()

	s := NewStore()
	run := s.Save(2, []mtypes.RecordDTO{
		{ID: "MOL_1", SMILES: "a"},
		{ID: "MOL_2", SMILES: "b"},
	})

	rec, err := s.Molecule(run.ID, "MOL_2")
	require.NoError(t, err)
	assert.Equal(t, "b", rec.SMILES)

	_, err = s.Molecule(run.ID, "MOL_9")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeNotFound))

	_, err = s.Molecule("missing", "MOL_1")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRunNotFound))
}

func TestStore_EvictsOldestBeyondCapacity(t *testing.T) {
	t.Parallel()

	s := NewStore()
	first := s.Save(1, nil)
	var ids []string
	for i := 0; i < maxRuns; i++ {
		ids = append(ids, s.Save(1, nil).ID)
	}

	assert.Equal(t, maxRuns, s.Len())

	_, err := s.Get(first.ID)
	assert.Error(t, err, "oldest run evicted")

	_, err = s.Get(ids[len(ids)-1])
	assert.NoError(t, err)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewStore()
	done := make(chan struct{})
	for g := 0; g < 4; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 50; i++ {
				run := s.Save(1, []mtypes.RecordDTO{{ID: fmt.Sprintf("MOL_%d", i+1)}})
				_, _ = s.Get(run.ID)
			}
		}(g)
	}
	for g := 0; g < 4; g++ {
		<-done
	}
	assert.Equal(t, maxRuns, s.Len())
}
