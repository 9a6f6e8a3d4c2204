package ports

import (
	"context"

	"github.com/bookhaven/catalog-system/internal/core/domain"
	"github.com/bookhaven/catalog-system/internal/core/token"
)

// MaxPageSize caps the page size of listing queries. Out-of-range values
// are rejected, never clamped.
const MaxPageSize = 100

// BookFilter carries all query parameters for listing books. Predicates
// are ANDed; empty fields are ignored.
type BookFilter struct {
	Genre    string // case-insensitive equality
	Author   string // case-insensitive substring
	Title    string // case-insensitive substring
	Page     int    // 1-based
	PageSize int    // 1..MaxPageSize
	SortBy   string // id, title, author, genre, year; default id
}

// BookPage is one slice of the filtered catalog plus the total count of
// matching items across all pages.
type BookPage struct {
	Items      []*domain.Book
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// BookInput carries the caller-supplied fields of a book.
type BookInput struct {
	Title  string
	Author string
	Genre  string
	Year   int
	Price  float64
}

// BookService defines the catalog use cases. Mutations take the verified
// claims explicitly; listing and reads are anonymous.
type BookService interface {
	ListBooks(ctx context.Context, filter BookFilter) (*BookPage, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	AddBook(ctx context.Context, claims *token.Claims, in BookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, claims *token.Claims, id string, in BookInput) error
	DeleteBook(ctx context.Context, claims *token.Claims, id string) error
}
