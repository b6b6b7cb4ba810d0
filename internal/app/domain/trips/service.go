package trips

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/app/models"
)

type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Save stores an itinerary as a new trip with a fresh id and save time.
func (s *Service) Save(ctx context.Context, itinerary models.Itinerary, image string) (*models.SavedTrip, error) {
	if strings.TrimSpace(itinerary.Destination) == "" {
		return nil, fmt.Errorf("%w: itinerary destination is required", models.ErrBadRequest)
	}

	trip := models.SavedTrip{
		Itinerary: itinerary,
		ID:        s.newID(),
		SavedAt:   s.now().UTC(),
		Image:     image,
	}
	if _, err := s.repo.Add(ctx, trip); err != nil {
		return nil, err
	}

	s.logger.Info("Trip saved",
		zap.String("trip_id", trip.ID),
		zap.String("destination", trip.Destination))
	return &trip, nil
}

func (s *Service) List(ctx context.Context) ([]models.SavedTrip, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.SavedTrip, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("trip %q: %w", id, models.ErrNotFound)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	if _, err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Trip removed", zap.String("trip_id", id))
	return nil
}
