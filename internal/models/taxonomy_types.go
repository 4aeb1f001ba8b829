package models

// Category is a gallery category derived from the artworks' category field.
// Slug is what the ?category= filter matches.
type Category struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}
