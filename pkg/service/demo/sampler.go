package demo

import (
	"math/rand/v2"
	"sync"

	"github.com/verteidiq/assessor/pkg/domain/interfaces"
)

// RandomSampler draws from the global math/rand/v2 source
type RandomSampler struct{}

var _ interfaces.Sampler = RandomSampler{}

func (RandomSampler) Float64() float64 {
	return rand.Float64()
}

func (RandomSampler) IntN(n int) int {
	return rand.IntN(n)
}

// SequenceSampler replays fixed values in order, starting over when a
// sequence is exhausted. An empty sequence yields zero.
type SequenceSampler struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
	fi, ii int
}

var _ interfaces.Sampler = &SequenceSampler{}

// NewSequenceSampler creates a sampler replaying floats and ints
func NewSequenceSampler(floats []float64, ints []int) *SequenceSampler {
	return &SequenceSampler{floats: floats, ints: ints}
}

func (s *SequenceSampler) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

// IntN returns the next value modulo n
func (s *SequenceSampler) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ints) == 0 || n <= 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)] % n
	s.ii++
	return v
}
