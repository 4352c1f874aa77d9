// Package generator implements the combinatorial candidate generation run:
// sampling fragment/linker combinations, assembling concatenation patterns,
// validating them through the chemistry toolkit, and gating acceptance on the
// drug-likeness weight window.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/turtacn/molforge/internal/domain/chem"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	promm "github.com/turtacn/molforge/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molforge/pkg/errors"
	mtypes "github.com/turtacn/molforge/pkg/types/molecule"
)

// ResultSet is the ordered outcome of one generation run.  Molecules holds
// the accepted records in acceptance order; its length never exceeds
// Requested and zero is a normal outcome.
type ResultSet struct {
	Requested int
	Molecules []mtypes.RecordDTO
	Duration  time.Duration
}

// Empty reports whether the run accepted no molecules.
func (r *ResultSet) Empty() bool { return len(r.Molecules) == 0 }

// Service runs generation. The random source is guarded by a mutex so the
// HTTP layer may invoke Generate concurrently; within one run, slots are
// strictly sequential.
type Service struct {
	toolkit chem.Toolkit
	logger  logging.Logger
	metrics *promm.GenerationMetrics

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithLogger replaces the no-op default logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics attaches generation metrics.  A nil value is safe.
func WithMetrics(m *promm.GenerationMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSeed fixes the random source so that repeated runs with identical
// inputs reproduce identical result sets.
func WithSeed(seed int64) Option {
	return func(s *Service) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand injects a caller-owned random source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// NewService builds a generation service around the given toolkit.
// Without options the random source is time-seeded and logging is off.
func NewService(toolkit chem.Toolkit, opts ...Option) *Service {
	s := &Service{
		toolkit: toolkit,
		logger:  logging.NewNopLogger(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reseed resets the random source.  Subsequent runs replay deterministically.
func (s *Service) Reseed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rand.New(rand.NewSource(seed))
}

// Generate runs requestedCount independent slots over the given collections
// and returns the accepted molecules in acceptance order.
//
// Each slot draws frag1, frag2 (with replacement) and a linker uniformly at
// random, assembles six concatenation patterns in fixed priority order, and
// accepts the first pattern that both parses and has molecular weight inside
// [150, 500].  A slot where all six patterns fail is dropped silently; there
// is no retry.  Toolkit failures are per-pattern rejections, never run
// failures.
func (s *Service) Generate(ctx context.Context, fragments, linkers []string, requestedCount int) (*ResultSet, error) {
	if len(fragments) == 0 {
		return nil, errors.New(errors.ErrCodeLibraryEmpty, "fragment collection is empty")
	}
	if len(linkers) == 0 {
		return nil, errors.New(errors.ErrCodeLibraryEmpty, "linker collection is empty")
	}
	if requestedCount < 1 {
		return nil, errors.New(errors.ErrCodeCountOutOfRange,
			fmt.Sprintf("requested count %d must be >= 1", requestedCount))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	result := &ResultSet{Requested: requestedCount}

	for slot := 0; slot < requestedCount; slot++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "generation run interrupted")
		}

		frag1 := fragments[s.rng.Intn(len(fragments))]
		frag2 := fragments[s.rng.Intn(len(fragments))]
		linker := linkers[s.rng.Intn(len(linkers))]

		record, ok := s.evaluateSlot(frag1, frag2, linker, len(result.Molecules)+1)
		if !ok {
			s.metrics.ObserveSlotDropped()
			continue
		}
		result.Molecules = append(result.Molecules, record)
	}

	result.Duration = time.Since(start)
	s.metrics.ObserveRun(result.Duration, len(result.Molecules))

	s.logger.Info("generation run complete",
		logging.Int("requested", requestedCount),
		logging.Int("generated", len(result.Molecules)),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

// candidatePatterns assembles the six concatenation patterns for one slot in
// their fixed priority order.  The order is part of the observable contract;
// the first acceptable pattern wins.
func candidatePatterns(frag1, frag2, linker string) [6]string {
	return [6]string{
		frag1 + linker + frag2,
		frag2 + linker + frag1,
		frag1 + linker,
		frag2 + linker,
		linker + frag1 + frag2,
		linker + frag2 + frag1,
	}
}

// evaluateSlot tries the slot's patterns in order and returns the first
// accepted record, identified as MOL_<ordinal>.
func (s *Service) evaluateSlot(frag1, frag2, linker string, ordinal int) (mtypes.RecordDTO, bool) {
	for _, pattern := range candidatePatterns(frag1, frag2, linker) {
		mol, err := s.toolkit.Parse(pattern)
		if err != nil {
			s.metrics.ObservePattern(promm.OutcomeRejectedParse)
			continue
		}

		desc := mtypes.Descriptors{
			Weight:     s.toolkit.MolecularWeight(mol),
			LogP:       s.toolkit.LogP(mol),
			TPSA:       s.toolkit.TPSA(mol),
			HAcceptors: s.toolkit.HAcceptorCount(mol),
			HDonors:    s.toolkit.HDonorCount(mol),
		}
		if !desc.IsDrugLike() {
			s.metrics.ObservePattern(promm.OutcomeRejectedWeight)
			continue
		}

		s.metrics.ObservePattern(promm.OutcomeAccepted)
		s.logger.Debug("pattern accepted",
			logging.String("smiles", pattern),
			logging.Float64("mol_wt", desc.Weight),
		)
		return mtypes.RecordDTO{
			ID:          mtypes.MoleculeID(ordinal),
			SMILES:      pattern,
			Descriptors: desc,
		}, true
	}
	return mtypes.RecordDTO{}, false
}
