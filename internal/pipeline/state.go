package pipeline

import (
	"sync"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
)

// State is the position of one export target in its lifecycle.
type State string

const (
	StateIdle      State = "idle"
	StateFetching  State = "fetching"
	StateComposing State = "composing"
	StateWriting   State = "writing"
	StateFailed    State = "failed"
)

// InFlight reports whether an export holding this state blocks a new one.
func (s State) InFlight() bool {
	return s == StateFetching || s == StateComposing || s == StateWriting
}

// Guard tracks the export state of every target. A target is in flight from
// Begin until Finish or Fail; a failed target accepts a new export right away
// and keeps reporting failed until it does.
type Guard struct {
	mu     sync.Mutex
	states map[domain.ExportTarget]State
}

func NewGuard() *Guard {
	return &Guard{states: make(map[domain.ExportTarget]State)}
}

// Begin moves target to fetching. It returns false, changing nothing, when
// the target is already in flight.
func (g *Guard) Begin(target domain.ExportTarget) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.states[target].InFlight() {
		return false
	}
	g.states[target] = StateFetching
	return true
}

// Advance records the next in-flight stage of a started export.
func (g *Guard) Advance(target domain.ExportTarget, s State) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.states[target].InFlight() {
		g.states[target] = s
	}
}

// Finish returns target to idle.
func (g *Guard) Finish(target domain.ExportTarget) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.states, target)
}

// Fail ends the export of target with the failed state.
func (g *Guard) Fail(target domain.ExportTarget) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.states[target] = StateFailed
}

// State returns the current state of target.
func (g *Guard) State(target domain.ExportTarget) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.states[target]; ok {
		return s
	}
	return StateIdle
}

// InFlight returns the number of targets being exported.
func (g *Guard) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, s := range g.states {
		if s.InFlight() {
			n++
		}
	}
	return n
}
