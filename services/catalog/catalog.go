package catalog

import (
	"strings"

	"courtbook/models"
)

// TypeAll disables the type filter.
const TypeAll = "all"

// Catalog is a snapshot of the fetched court list. Filters always run against the
// full snapshot, never against a previous filter's result.
type Catalog struct {
	courts []models.Court
}

func New(courts []models.Court) *Catalog {
	if courts == nil {
		courts = []models.Court{}
	}
	return &Catalog{courts: courts}
}

// ListCourts returns the snapshot unchanged.
func (c *Catalog) ListCourts() []models.Court {
	return c.courts
}

// FilterByName keeps courts whose name contains q, ignoring case. An empty q keeps all.
func (c *Catalog) FilterByName(q string) []models.Court {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return c.courts
	}
	out := make([]models.Court, 0, len(c.courts))
	for _, court := range c.courts {
		if strings.Contains(strings.ToLower(court.Name), q) {
			out = append(out, court)
		}
	}
	return out
}

// FilterByType keeps courts of type t, ignoring case. "all" or "" keeps all.
func (c *Catalog) FilterByType(t string) []models.Court {
	t = strings.TrimSpace(t)
	if t == "" || strings.EqualFold(t, TypeAll) {
		return c.courts
	}
	out := make([]models.Court, 0, len(c.courts))
	for _, court := range c.courts {
		if strings.EqualFold(court.Type, t) {
			out = append(out, court)
		}
	}
	return out
}

// Filter applies both the name and the type filter.
func (c *Catalog) Filter(q, t string) []models.Court {
	return New(c.FilterByName(q)).FilterByType(t)
}

func (c *Catalog) Find(id string) (models.Court, bool) {
	for _, court := range c.courts {
		if court.ID == id {
			return court, true
		}
	}
	return models.Court{}, false
}
