package trips

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/app/models"
	"github.com/FACorreiaa/wanderai/internal/app/observability/metrics"
)

// TripsKey is the key the saved-trip list lives under.
const TripsKey = "wanderai_trips"

// Repository keeps the saved-trip list, newest first.
type Repository interface {
	List(ctx context.Context) ([]models.SavedTrip, error)
	Add(ctx context.Context, trip models.SavedTrip) ([]models.SavedTrip, error)
	Remove(ctx context.Context, id string) ([]models.SavedTrip, error)
}

// Store is a Repository holding the whole list as one JSON value. Every change
// rewrites the list.
type Store struct {
	kv     KVStore
	logger *zap.Logger
	mu     sync.Mutex
}

var _ Repository = (*Store)(nil)

func NewStore(kv KVStore, logger *zap.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

func (s *Store) List(ctx context.Context) ([]models.SavedTrip, error) {
	return s.read(ctx)
}

func (s *Store) Add(ctx context.Context, trip models.SavedTrip) ([]models.SavedTrip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	updated := append([]models.SavedTrip{trip}, current...)
	if err := s.write(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes the trip with id. An unknown id returns models.ErrNotFound
// and leaves the stored list untouched.
func (s *Store) Remove(ctx context.Context, id string) ([]models.SavedTrip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	updated := make([]models.SavedTrip, 0, len(current))
	for _, t := range current {
		if t.ID != id {
			updated = append(updated, t)
		}
	}
	if len(updated) == len(current) {
		return nil, fmt.Errorf("trip %q: %w", id, models.ErrNotFound)
	}
	if err := s.write(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) read(ctx context.Context) ([]models.SavedTrip, error) {
	data, ok, err := s.kv.Get(ctx, TripsKey)
	if err != nil {
		return nil, fmt.Errorf("load saved trips: %w", err)
	}
	if !ok || len(data) == 0 {
		return []models.SavedTrip{}, nil
	}

	var list []models.SavedTrip
	if err := json.Unmarshal(data, &list); err != nil {
		s.logger.Error("Saved trips are not valid JSON", zap.Error(err))
		return nil, fmt.Errorf("decode saved trips: %w", err)
	}
	if list == nil {
		list = []models.SavedTrip{}
	}
	return list, nil
}

func (s *Store) write(ctx context.Context, list []models.SavedTrip) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode saved trips: %w", err)
	}
	if err := s.kv.Set(ctx, TripsKey, data); err != nil {
		return fmt.Errorf("store saved trips: %w", err)
	}
	metrics.Get().SavedTripsWritesTotal.Add(ctx, 1)
	return nil
}
