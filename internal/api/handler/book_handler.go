package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/catalog-system/internal/api/metrics"
	apimw "github.com/bookhaven/catalog-system/internal/api/middleware"
	"github.com/bookhaven/catalog-system/internal/core/domain"
	"github.com/bookhaven/catalog-system/internal/core/ports"
)

// BookHandler handles HTTP requests for catalog operations.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// List handles GET /books with filtering and pagination. Anonymous.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Param        genre      query     string  false  "Genre, exact match (case-insensitive)"
// @Param        author     query     string  false  "Author substring"
// @Param        title      query     string  false  "Title substring"
// @Param        page       query     int     false  "1-based page"       default(1)
// @Param        page_size  query     int     false  "Items per page"     default(10)
// @Param        sort_by    query     string  false  "id|title|author|genre|year"
// @Success      200        {object}  listBooksResponse
// @Failure      400        {object}  errorResponse
// @Router       /books [get]
func (h *BookHandler) List(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}

	start := time.Now()
	page, err := h.service.ListBooks(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	metrics.ListQueryDuration.Observe(time.Since(start).Seconds())

	items := make([]bookResponse, len(page.Items))
	for i, b := range page.Items {
		items[i] = toBookResponse(b)
	}

	return c.JSON(http.StatusOK, listBooksResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	})
}

// Get handles GET /books/:id. Anonymous.
//
// @Summary      Get a book by id
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  bookResponse
// @Failure      404  {object}  errorResponse
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.GetBook(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// Create handles POST /books. Requires Admin or Author.
//
// @Summary      Add a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookRequest  true  "Book details"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	book, err := h.service.AddBook(c.Request().Context(), apimw.ClaimsFrom(c), toBookInput(req))
	if err != nil {
		return err
	}

	metrics.BooksMutatedTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusCreated, toBookResponse(book))
}

// Update handles PUT /books/:id. Admin may update any book, Author only
// their own.
//
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Book id"
// @Param        body  body      bookRequest  true  "Book details"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.UpdateBook(c.Request().Context(), apimw.ClaimsFrom(c), c.Param("id"), toBookInput(req)); err != nil {
		return err
	}

	metrics.BooksMutatedTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "book updated"})
}

// Delete handles DELETE /books/:id. Same ownership rules as Update.
//
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteBook(c.Request().Context(), apimw.ClaimsFrom(c), c.Param("id")); err != nil {
		return err
	}

	metrics.BooksMutatedTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "book deleted"})
}

// filterFromQuery parses listing query parameters, applying the defaults
// before the query engine validates the bounds.
func filterFromQuery(c echo.Context) (ports.BookFilter, error) {
	filter := ports.BookFilter{
		Genre:    c.QueryParam("genre"),
		Author:   c.QueryParam("author"),
		Title:    c.QueryParam("title"),
		SortBy:   c.QueryParam("sort_by"),
		Page:     1,
		PageSize: 10,
	}

	var issues domain.ValidationIssues
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			issues = issues.Issue("page", "must be an integer")
		} else {
			filter.Page = n
		}
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			issues = issues.Issue("page_size", "must be an integer")
		} else {
			filter.PageSize = n
		}
	}
	if err := issues.OrNil(); err != nil {
		return ports.BookFilter{}, err
	}
	return filter, nil
}

func toBookInput(req bookRequest) ports.BookInput {
	return ports.BookInput{
		Title:  req.Title,
		Author: req.Author,
		Genre:  req.Genre,
		Year:   req.Year,
		Price:  req.Price,
	}
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		Year:          b.Year,
		Price:         b.Price,
		OwnerUsername: b.OwnerUsername,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
