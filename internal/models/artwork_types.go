package models

import "time"

// MediaKind is the kind of an uploaded media file.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaRef points at one stored media file.
type MediaRef struct {
	URL  string    `json:"url" db:"url"`
	Key  string    `json:"key" db:"storage_key"`
	Kind MediaKind `json:"kind" db:"kind"`
	Size int64     `json:"size" db:"size_bytes"`
}

// ArtworkRecord is one catalog entry.
// A record without media is allowed; consumers show "no preview available".
type ArtworkRecord struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title" binding:"required"`
	Price       float64    `json:"price" db:"price" binding:"gte=0"`
	Description string     `json:"description,omitempty" db:"description"`
	Category    string     `json:"category,omitempty" db:"category"`
	Size        string     `json:"size,omitempty" db:"size"`
	Medium      string     `json:"medium,omitempty" db:"medium"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	Media       []MediaRef `json:"media" db:"-"`
}

// HasPreview reports whether the record has at least one media entry.
func (a *ArtworkRecord) HasPreview() bool {
	return len(a.Media) > 0
}

// PreviewImage returns the URL of the first image, or "".
func (a *ArtworkRecord) PreviewImage() string {
	for _, m := range a.Media {
		if m.Kind == MediaImage {
			return m.URL
		}
	}
	return ""
}
