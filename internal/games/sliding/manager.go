package sliding

import "math/rand"

// Listener receives the new state after every change.
type Listener func(State)

// Manager owns the current puzzle state and tells subscribers when it is
// replaced. It is not safe for concurrent use; platforms serialise input.
type Manager struct {
	state        State
	rng          *rand.Rand
	shuffleMoves int

	listeners []subscription
	nextID    int
}

type subscription struct {
	id int
	fn Listener
}

// NewManager creates a manager with a freshly shuffled board.
func NewManager(rng *rand.Rand, size, shuffleMoves int) *Manager {
	return &Manager{
		state:        NewState(rng, size, shuffleMoves),
		rng:          rng,
		shuffleMoves: shuffleMoves,
	}
}

// NewManagerWithState creates a manager starting from a known state.
// Later resets use rng and shuffleMoves.
func NewManagerWithState(s State, rng *rand.Rand, shuffleMoves int) *Manager {
	return &Manager{
		state:        s.Clone(),
		rng:          rng,
		shuffleMoves: shuffleMoves,
	}
}

// Snapshot returns a copy of the current state that callers may keep.
func (m *Manager) Snapshot() State {
	return m.state.Clone()
}

// Apply slides the tile at target into the empty slot.
// Returns false, without notifying, when the move was rejected.
func (m *Manager) Apply(target int) bool {
	next, ok := m.state.ApplyMove(target)
	if !ok {
		return false
	}
	m.replace(next)
	return true
}

// Reset starts a new shuffled game.
func (m *Manager) Reset() {
	m.replace(m.state.Reset(m.rng, m.shuffleMoves))
}

// Subscribe registers fn to run after every state change and returns a
// function that removes it.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, subscription{id: id, fn: fn})

	// A fresh slice leaves any in-progress notification loop untouched.
	return func() {
		kept := make([]subscription, 0, len(m.listeners))
		for _, sub := range m.listeners {
			if sub.id != id {
				kept = append(kept, sub)
			}
		}
		m.listeners = kept
	}
}

func (m *Manager) replace(next State) {
	m.state = next
	for _, sub := range m.listeners {
		sub.fn(m.state.Clone())
	}
}
