package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("book not found")
var ErrForbidden = errors.New("access forbidden")

// Book is the catalog aggregate. OwnerUsername is set when an Author
// creates the book and left empty for Admin-created books, which belong
// to the system.
type Book struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Title         string    `json:"title" bson:"title"`
	Author        string    `json:"author" bson:"author"`
	Genre         string    `json:"genre" bson:"genre"`
	Year          int       `json:"year" bson:"year"`
	Price         float64   `json:"price" bson:"price"`
	OwnerUsername string    `json:"owner_username,omitempty" bson:"owner_username,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
