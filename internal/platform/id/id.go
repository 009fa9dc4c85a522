package id

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID yields random version 4 UUIDs.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// Sequence yields "<prefix>-1", "<prefix>-2", ... and is safe for concurrent use.
type Sequence struct {
	Prefix string
	n      atomic.Int64
}

func (s *Sequence) New() string {
	return fmt.Sprintf("%s-%d", s.Prefix, s.n.Add(1))
}
