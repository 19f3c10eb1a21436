package account

import "context"

// GeneratePlacementPrompt returns one of the fixed placement sentences.
func (m *Manager) GeneratePlacementPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen.PlacementPrompt()
}

// HasCompletedPlacement reports whether the active account finished placement.
func (m *Manager) HasCompletedPlacement() bool {
	acc, ok := m.session.Current()
	return ok && acc.PlacementComplete
}

// CompletePlacement marks placement done and stores baselineWPM. Calling it
// again overwrites the baseline.
func (m *Manager) CompletePlacement(ctx context.Context, baselineWPM float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	username, ok := m.session.username()
	if !ok {
		return ErrNotLoggedIn
	}
	acc, err := m.loadAccount(ctx, username)
	if err != nil {
		return err
	}
	acc.PlacementComplete = true
	acc.BaselineWPM = baselineWPM
	if err := m.saveAccount(ctx, acc); err != nil {
		return err
	}
	m.session.set(acc)
	return nil
}
