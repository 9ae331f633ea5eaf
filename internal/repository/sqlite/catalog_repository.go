package sqlite

import (
	"context"

	"github.com/unrealities/talkie-trivia-sub000/internal/db"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
	"github.com/unrealities/talkie-trivia-sub000/internal/repository"
)

type catalogRepository struct {
	db *db.DB
}

// NewCatalogRepository creates a new CatalogRepository implementation
func NewCatalogRepository(db *db.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ItemByID(ctx context.Context, id int64) (*models.TriviaItem, error) {
	return r.db.GetTriviaItem(ctx, id)
}

func (r *catalogRepository) ItemCount(ctx context.Context) (int, error) {
	return r.db.CountTriviaItems(ctx)
}

func (r *catalogRepository) ItemByIndex(ctx context.Context, index int) (*models.TriviaItem, error) {
	return r.db.GetTriviaItemByIndex(ctx, index)
}

func (r *catalogRepository) SearchItems(ctx context.Context, query string, limit int) ([]models.TriviaItem, error) {
	return r.db.SearchTriviaItems(ctx, query, limit)
}
