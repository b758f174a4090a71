package agenda

import (
	"context"
	"fmt"
	"time"
)

// StateService owns the UI state lifecycle: it hands out the current state
// for a visitor (creating the default when none exists) and applies
// transitions atomically enough for a single-browser visitor.
type StateService interface {
	// Get returns the visitor's current state, creating and persisting the
	// default on first sight.
	Get(ctx context.Context, visitorID string) (State, error)

	// Apply loads the state, runs the mutation, persists and returns the
	// result.
	Apply(ctx context.Context, visitorID string, mutate func(*State)) (State, error)
}

// stateService is the default StateService implementation.
type stateService struct {
	repo StateRepository
	now  func() time.Time
}

// NewStateService creates a StateService backed by the given repository.
func NewStateService(repo StateRepository) StateService {
	return &stateService{repo: repo, now: time.Now}
}

// load returns the stored state or a fresh default.
func (s *stateService) load(ctx context.Context, visitorID string) (State, error) {
	stored, err := s.repo.Load(ctx, visitorID)
	if err != nil {
		return State{}, fmt.Errorf("get ui state: %w", err)
	}
	if stored == nil {
		return NewState(s.now()), nil
	}
	return *stored, nil
}

func (s *stateService) Get(ctx context.Context, visitorID string) (State, error) {
	st, err := s.load(ctx, visitorID)
	if err != nil {
		return State{}, err
	}
	// Persisting on read refreshes the TTL while the visitor is active.
	if err := s.repo.Save(ctx, visitorID, st); err != nil {
		return State{}, fmt.Errorf("save ui state: %w", err)
	}
	return st, nil
}

func (s *stateService) Apply(ctx context.Context, visitorID string, mutate func(*State)) (State, error) {
	st, err := s.load(ctx, visitorID)
	if err != nil {
		return State{}, err
	}
	mutate(&st)
	if err := s.repo.Save(ctx, visitorID, st); err != nil {
		return State{}, fmt.Errorf("save ui state: %w", err)
	}
	return st, nil
}
