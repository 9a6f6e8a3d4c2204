package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookhaven/catalog-system/internal/core/authz"
	"github.com/bookhaven/catalog-system/internal/core/domain"
	"github.com/bookhaven/catalog-system/internal/core/ports"
	"github.com/bookhaven/catalog-system/internal/core/token"
)

// BookService implements the catalog use cases on top of the abstract
// book store, gated by the access-control facade.
type BookService struct {
	repo   ports.BookRepository
	access *AccessControl
	audit  ports.AuditSink
	log    zerolog.Logger
}

func NewBookService(repo ports.BookRepository, access *AccessControl, audit ports.AuditSink, log zerolog.Logger) *BookService {
	return &BookService{repo: repo, access: access, audit: audit, log: log}
}

// ListBooks validates the filter, reads the catalog, and slices it with
// the query engine. No authentication is required.
func (s *BookService) ListBooks(ctx context.Context, filter ports.BookFilter) (*ports.BookPage, error) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}

	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items, total := ApplyFilter(filter, books)
	totalPages := total / filter.PageSize
	if total%filter.PageSize != 0 {
		totalPages++
	}

	return &ports.BookPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *BookService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

// AddBook creates a book. Author callers become the owner of the new
// book; Admin-created books have no owner and belong to the system.
func (s *BookService) AddBook(ctx context.Context, claims *token.Claims, in ports.BookInput) (*domain.Book, error) {
	if decision := s.access.CheckOperation(claims, authz.OpAddBook); !decision.Allowed {
		return nil, decision.Err()
	}
	if err := validateBookInput(in); err != nil {
		return nil, err
	}

	owner := ""
	if claims.Role == domain.RoleAuthor {
		owner = claims.Subject
	}

	now := time.Now().UTC()
	book := &domain.Book{
		Title:         in.Title,
		Author:        in.Author,
		Genre:         in.Genre,
		Year:          in.Year,
		Price:         in.Price,
		OwnerUsername: owner,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return nil, err
	}

	s.record(claims.Subject, domain.AuditActionAddBook, created.ID, domain.AuditOutcomeOK)
	s.log.Info().
		Str("book_id", created.ID).
		Str("owner", owner).
		Str("actor", claims.Subject).
		Msg("book added")
	return created, nil
}

func (s *BookService) UpdateBook(ctx context.Context, claims *token.Claims, id string, in ports.BookInput) error {
	book, decision, err := s.access.CheckMutateBook(ctx, claims, id)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		s.recordDenied(claims, domain.AuditActionUpdateBook, id)
		return decision.Err()
	}
	if err := validateBookInput(in); err != nil {
		return err
	}

	book.Title = in.Title
	book.Author = in.Author
	book.Genre = in.Genre
	book.Year = in.Year
	book.Price = in.Price
	book.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, book); err != nil {
		return err
	}

	s.record(claims.Subject, domain.AuditActionUpdateBook, id, domain.AuditOutcomeOK)
	s.log.Info().Str("book_id", id).Str("actor", claims.Subject).Msg("book updated")
	return nil
}

func (s *BookService) DeleteBook(ctx context.Context, claims *token.Claims, id string) error {
	_, decision, err := s.access.CheckMutateBook(ctx, claims, id)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		s.recordDenied(claims, domain.AuditActionDeleteBook, id)
		return decision.Err()
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(claims.Subject, domain.AuditActionDeleteBook, id, domain.AuditOutcomeOK)
	s.log.Info().Str("book_id", id).Str("actor", claims.Subject).Msg("book deleted")
	return nil
}

func validateBookInput(in ports.BookInput) error {
	var issues domain.ValidationIssues
	if in.Title == "" {
		issues = issues.Issue("title", "is required")
	}
	if in.Author == "" {
		issues = issues.Issue("author", "is required")
	}
	if in.Genre == "" {
		issues = issues.Issue("genre", "is required")
	}
	if in.Year < 0 || in.Year > time.Now().Year()+1 {
		issues = issues.Issue("year", "is out of range")
	}
	if in.Price < 0 {
		issues = issues.Issue("price", "must not be negative")
	}
	return issues.OrNil()
}

func (s *BookService) record(actor, action, target, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEventInput{
		Actor:     actor,
		Action:    action,
		Target:    target,
		Outcome:   outcome,
		Timestamp: time.Now().UTC(),
	})
}

func (s *BookService) recordDenied(claims *token.Claims, action, target string) {
	actor := ""
	if claims != nil {
		actor = claims.Subject
	}
	s.record(actor, action, target, domain.AuditOutcomeDenied)
}
