// internal/optimistic/optimistic.go

// Package optimistic runs a local state change ahead of its remote effect
// and undoes it if the effect fails. Like and follow toggles share this
// pattern: the caller flips the visible state first so the actor never
// waits on the round trip, then reconciles.
package optimistic

// Mutation pairs a local apply/rollback with the remote effect it fronts.
// Apply runs before Effect; Rollback runs only when Effect returns an error
// and must undo Apply exactly.
type Mutation struct {
	Apply    func()
	Rollback func()
	Effect   func() error
}

// Run executes the mutation. The returned error is the effect's error,
// after rollback has already run.
func Run(m Mutation) error {
	if m.Apply != nil {
		m.Apply()
	}

	if err := m.Effect(); err != nil {
		if m.Rollback != nil {
			m.Rollback()
		}
		return err
	}

	return nil
}
