package seed

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/dmitrijs2005/baconnect/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunityPosts(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	posts := CommunityPosts(now)
	require.Len(t, posts, 2)

	for _, p := range posts {
		assert.True(t, p.IsSeed(), "seed ids must be in the reserved range")
		assert.NotEmpty(t, p.ImageURI)
	}
	assert.Equal(t, timex.Millis(now)-2*24*3600*1000, posts[0].Date)
	assert.Equal(t, timex.Millis(now)-12*3600*1000, posts[1].Date)
}

func TestSet_FindAndMatch(t *testing.T) {
	s := Default(time.Now())

	m, ok := s.FindByID(RecoletaID)
	require.True(t, ok)
	assert.Equal(t, "Recoleta, Buenos Aires", m.Location)

	_, ok = s.FindByID(1)
	assert.False(t, ok)

	tests := []struct {
		text string
		mode models.MatchMode
		want []int64
	}{
		{"caminito", models.MatchInsensitive, []int64{LaBocaID}},
		{"caminito", models.MatchSensitive, nil},
		{"Buenos Aires", models.MatchSensitive, []int64{LaBocaID, RecoletaID}},
		{"JACARANDÁS", models.MatchInsensitive, []int64{RecoletaID}},
		{"mendoza", models.MatchInsensitive, nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var got []int64
			for _, m := range s.Matching(tt.text, tt.mode) {
				got = append(got, m.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSet_AllIsACopy(t *testing.T) {
	s := Default(time.Now())
	all := s.All()
	all[0].Description = "changed"
	assert.NotEqual(t, "changed", s.All()[0].Description)

	var empty *Set
	assert.Empty(t, empty.All())
	assert.Empty(t, empty.Matching("", models.MatchInsensitive))
}
