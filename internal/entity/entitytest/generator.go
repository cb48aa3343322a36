// Package entitytest содержит детерминированный Generator для тестов.
package entitytest

import (
	"fmt"
	"sync"
	"time"
)

// StepGenerator выдает id вида "id-1", "id-2", ... и время, растущее на step с каждым вызовом Now.
type StepGenerator struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
	seq  int
}

func NewStepGenerator(start time.Time, step time.Duration) *StepGenerator {
	return &StepGenerator{now: start, step: step}
}

func (g *StepGenerator) Now() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := g.now
	g.now = g.now.Add(g.step)
	return t
}

func (g *StepGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("id-%d", g.seq)
}
