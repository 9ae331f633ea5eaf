package catalog

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/unrealities/talkie-trivia-sub000/internal/errors"
	"github.com/unrealities/talkie-trivia-sub000/internal/logger"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
	"github.com/unrealities/talkie-trivia-sub000/internal/repository"
)

// DateKeyLayout formats the day key every daily session is bound to.
const DateKeyLayout = "2006-01-02"

// DateKey returns the day key for a point in time.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// Service selects the day's trivia item and resolves full-detail records
// for guessed items.
type Service struct {
	repo repository.CatalogRepository
}

func NewService(repo repository.CatalogRepository) *Service {
	return &Service{repo: repo}
}

// ItemOfDay deterministically picks one catalog item for a day key: every
// player sees the same item, and the pick is stable across restarts.
func (s *Service) ItemOfDay(ctx context.Context, dateKey string) (*models.TriviaItem, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	count, err := s.repo.ItemCount(ctx)
	if err != nil {
		log.Error("failed to count catalog items: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if count == 0 {
		return nil, errors.NewNotFoundError("trivia item for day", dateKey)
	}

	h := fnv.New32a()
	h.Write([]byte(dateKey))
	index := int(h.Sum32()) % count
	if index < 0 {
		index += count
	}

	item, err := s.repo.ItemByIndex(ctx, index)
	if err != nil {
		log.Error("failed to fetch item of day: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("trivia item for day", dateKey)
	}
	log.Debug("item of day %s: id=%d", dateKey, item.ID)
	return item, nil
}

// ItemByID resolves the full-detail record for a guessed item. A missing
// record is reported as an error so callers can degrade.
func (s *Service) ItemByID(ctx context.Context, id int64) (*models.TriviaItem, error) {
	item, err := s.repo.ItemByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("trivia item", id)
	}
	return item, nil
}

// Search finds catalog items by title for the guess picker.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]models.TriviaItem, error) {
	items, err := s.repo.SearchItems(ctx, query, limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return items, nil
}
