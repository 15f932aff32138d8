package state

import (
	"sync"

	"github.com/aljaz-ferenc/budget-app/models"
)

// Store is the single source of truth for the signed-in user's financial data.
// Transitions happen only through Dispatch; reads get an independent snapshot.
// Dispatches are serialized, so transitions never overlap.
type Store struct {
	mu   sync.RWMutex
	view models.UserView
}

func NewStore() *Store {
	return &Store{view: emptyView()}
}

// Dispatch applies an action to the current view.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = Reduce(s.view, action)
}

// Snapshot returns a deep copy of the current view. Callers can hold or mutate
// it freely without affecting the store.
func (s *Store) Snapshot() models.UserView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneView(s.view)
}

// Reset returns the store to the signed-out state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = emptyView()
}

func emptyView() models.UserView {
	return models.UserView{
		Incomes: []models.Transaction{},
		Savings: []models.Saving{},
		Budgets: []models.Budget{},
	}
}
