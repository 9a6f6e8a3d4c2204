package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=Admin Author Reader"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// --- Books ---

type bookRequest struct {
	Title  string  `json:"title"  validate:"required"`
	Author string  `json:"author" validate:"required"`
	Genre  string  `json:"genre"  validate:"required"`
	Year   int     `json:"year"   validate:"gte=0"`
	Price  float64 `json:"price"  validate:"gte=0"`
}

type bookResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	Year          int       `json:"year"`
	Price         float64   `json:"price"`
	OwnerUsername string    `json:"owner_username,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type listBooksResponse struct {
	Items      []bookResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}
