package artwork

import (
	"sort"
	"strings"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/gosimple/slug"
)

// Categories groups records by category slug, sorted by name.
// Records without a category are not listed.
func Categories(records []models.ArtworkRecord) []models.Category {
	byslug := map[string]*models.Category{}
	for _, r := range records {
		name := strings.TrimSpace(r.Category)
		if name == "" {
			continue
		}
		s := slug.Make(name)
		if cat, ok := byslug[s]; ok {
			cat.Count++
			continue
		}
		byslug[s] = &models.Category{Name: name, Slug: s, Count: 1}
	}

	out := make([]models.Category, 0, len(byslug))
	for _, cat := range byslug {
		out = append(out, *cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FilterCategory keeps the records whose category matches the slug s.
// An empty s keeps everything.
func FilterCategory(records []models.ArtworkRecord, s string) []models.ArtworkRecord {
	s = slug.Make(s)
	if s == "" {
		return records
	}
	out := make([]models.ArtworkRecord, 0, len(records))
	for _, r := range records {
		if slug.Make(r.Category) == s {
			out = append(out, r)
		}
	}
	return out
}
