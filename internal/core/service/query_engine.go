package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bookhaven/catalog-system/internal/core/domain"
	"github.com/bookhaven/catalog-system/internal/core/ports"
)

// sortKeys are the recognised values of BookFilter.SortBy.
var sortKeys = map[string]struct{}{
	"id":     {},
	"title":  {},
	"author": {},
	"genre":  {},
	"year":   {},
}

// ValidateFilter checks a listing filter against the pagination bounds.
// Out-of-range values are rejected rather than clamped, and every
// violated rule is reported at once.
func ValidateFilter(f ports.BookFilter) error {
	var issues domain.ValidationIssues
	if f.Page < 1 {
		issues = issues.Issue("page", "must be at least 1")
	}
	if f.PageSize < 1 || f.PageSize > ports.MaxPageSize {
		issues = issues.Issue("page_size", "must be between 1 and "+strconv.Itoa(ports.MaxPageSize))
	}
	if f.SortBy != "" {
		if _, ok := sortKeys[f.SortBy]; !ok {
			issues = issues.Issue("sort_by", "unknown sort key")
		}
	}
	return issues.OrNil()
}

// ApplyFilter runs a validated filter over the full catalog sequence and
// returns the requested page plus the total match count. Predicates are
// ANDed: genre is a case-insensitive equality check, title and author are
// case-insensitive substring matches. Items are stably sorted by the sort
// key (id ascending by default) before the offset/limit slice, so a page
// past the end comes back empty rather than erroring or wrapping.
func ApplyFilter(f ports.BookFilter, books []*domain.Book) ([]*domain.Book, int) {
	matched := make([]*domain.Book, 0, len(books))
	for _, b := range books {
		if f.Genre != "" && !strings.EqualFold(b.Genre, f.Genre) {
			continue
		}
		if f.Author != "" && !containsFold(b.Author, f.Author) {
			continue
		}
		if f.Title != "" && !containsFold(b.Title, f.Title) {
			continue
		}
		matched = append(matched, b)
	}

	sortBooks(matched, f.SortBy)

	total := len(matched)
	offset := (f.Page - 1) * f.PageSize
	if offset >= total {
		return []*domain.Book{}, total
	}
	end := offset + f.PageSize
	if end > total {
		end = total
	}
	return matched[offset:end], total
}

func sortBooks(books []*domain.Book, key string) {
	sort.SliceStable(books, func(i, j int) bool {
		a, b := books[i], books[j]
		switch key {
		case "title":
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case "author":
			return strings.ToLower(a.Author) < strings.ToLower(b.Author)
		case "genre":
			return strings.ToLower(a.Genre) < strings.ToLower(b.Genre)
		case "year":
			return a.Year < b.Year
		default: // "id" or empty
			return a.ID < b.ID
		}
	})
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
