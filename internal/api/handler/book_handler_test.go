package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	apimw "github.com/bookhaven/catalog-system/internal/api/middleware"
	"github.com/bookhaven/catalog-system/internal/core/domain"
	"github.com/bookhaven/catalog-system/internal/core/ports"
	"github.com/bookhaven/catalog-system/internal/core/token"
)

type stubBookService struct {
	filter ports.BookFilter
	claims *token.Claims
}

func (s *stubBookService) ListBooks(_ context.Context, filter ports.BookFilter) (*ports.BookPage, error) {
	s.filter = filter
	return &ports.BookPage{Items: []*domain.Book{}, Page: filter.Page, PageSize: filter.PageSize}, nil
}

func (s *stubBookService) GetBook(context.Context, string) (*domain.Book, error) {
	return nil, domain.ErrBookNotFound
}

func (s *stubBookService) AddBook(_ context.Context, claims *token.Claims, _ ports.BookInput) (*domain.Book, error) {
	s.claims = claims
	return &domain.Book{ID: "1", Title: "X"}, nil
}

func (s *stubBookService) UpdateBook(context.Context, *token.Claims, string, ports.BookInput) error {
	return nil
}

func (s *stubBookService) DeleteBook(context.Context, *token.Claims, string) error {
	return nil
}

func newBookContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBookHandler_List_Defaults(t *testing.T) {
	svc := &stubBookService{}
	h := NewBookHandler(svc)

	c, rec := newBookContext(t, "/books")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.filter.Page != 1 || svc.filter.PageSize != 10 {
		t.Fatalf("expected defaults page=1 page_size=10, got %+v", svc.filter)
	}
}

func TestBookHandler_List_QueryParams(t *testing.T) {
	svc := &stubBookService{}
	h := NewBookHandler(svc)

	c, _ := newBookContext(t, "/books?genre=Sci-Fi&author=A&page=3&page_size=25&sort_by=title")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	f := svc.filter
	if f.Genre != "Sci-Fi" || f.Author != "A" || f.Page != 3 || f.PageSize != 25 || f.SortBy != "title" {
		t.Fatalf("filter not parsed: %+v", f)
	}
}

func TestBookHandler_List_BadPage(t *testing.T) {
	h := NewBookHandler(&stubBookService{})

	c, _ := newBookContext(t, "/books?page=abc")
	err := h.List(c)
	var issues domain.ValidationIssues
	if !errors.As(err, &issues) {
		t.Fatalf("expected ValidationIssues, got %v", err)
	}
}

func TestBookHandler_Create_PassesClaims(t *testing.T) {
	svc := &stubBookService{}
	h := NewBookHandler(svc)

	e := echo.New()
	e.Validator = NewValidator()
	body := `{"title":"Dune","author":"Herbert","genre":"Sci-Fi","year":1965,"price":9.99}`
	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(apimw.ClaimsKey, &token.Claims{Subject: "alice", Role: domain.RoleAuthor})

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.claims == nil || svc.claims.Subject != "alice" {
		t.Fatalf("claims not threaded to the service: %+v", svc.claims)
	}
}

func TestBookHandler_Get_NotFound(t *testing.T) {
	h := NewBookHandler(&stubBookService{})

	c, _ := newBookContext(t, "/books/404")
	if err := h.Get(c); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound to propagate, got %v", err)
	}
}
