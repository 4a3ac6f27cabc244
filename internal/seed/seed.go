// Package seed holds the fixed community moments shown alongside stored
// ones. They are never written to the store.
package seed

import (
	"math"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/dmitrijs2005/baconnect/internal/timex"
)

const (
	LaBocaID   int64 = math.MinInt64
	RecoletaID int64 = math.MinInt64 + 1
)

// CommunityPosts returns the seed moments dated relative to now.
func CommunityPosts(now time.Time) []models.Moment {
	return []models.Moment{
		{
			ID:          LaBocaID,
			ImageURI:    "https://unpeudargentine.com/wp-content/uploads/2024/05/317-1024x1024.jpg",
			Description: `Tigre Sunset 2025 - "Vibras del Caminito" - Las casas pintadas se encienden con el amanecer porteño.`,
			Date:        timex.Millis(now.Add(-48 * time.Hour)),
			Location:    "La Boca, Buenos Aires",
		},
		{
			ID:          RecoletaID,
			ImageURI:    "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcR6uXb04pOpg_QaBS9HHl0pJnk0QNrECy66EQ&s",
			Description: `Recoleta Jazz Nocturno - "Calma entre jacarandás" - Paseo matinal entre calles violetas y cafés clásicos.`,
			Date:        timex.Millis(now.Add(-12 * time.Hour)),
			Location:    "Recoleta, Buenos Aires",
		},
	}
}

// Set is an immutable list of seed moments.
type Set struct {
	posts []models.Moment
}

func NewSet(posts []models.Moment) *Set {
	return &Set{posts: append([]models.Moment(nil), posts...)}
}

// Default builds the community posts once, dated relative to now.
func Default(now time.Time) *Set {
	return NewSet(CommunityPosts(now))
}

// All returns a copy of every seed moment.
func (s *Set) All() []models.Moment {
	if s == nil {
		return nil
	}
	return append([]models.Moment(nil), s.posts...)
}

func (s *Set) FindByID(id int64) (models.Moment, bool) {
	if s == nil {
		return models.Moment{}, false
	}
	for _, m := range s.posts {
		if m.ID == id {
			return m, true
		}
	}
	return models.Moment{}, false
}

// Matching returns seeds whose description or location contains text.
func (s *Set) Matching(text string, mode models.MatchMode) []models.Moment {
	if s == nil {
		return nil
	}
	var out []models.Moment
	for _, m := range s.posts {
		if mode.Contains(m.Description, text) || mode.Contains(m.Location, text) {
			out = append(out, m)
		}
	}
	return out
}
