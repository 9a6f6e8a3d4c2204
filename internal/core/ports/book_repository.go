package ports

import (
	"context"

	"github.com/bookhaven/catalog-system/internal/core/domain"
)

// BookRepository defines persistence operations for catalog items. The
// query engine does its own filtering and slicing, so listing only needs
// the full sequence.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	FindAll(ctx context.Context) ([]*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id string) error
}
