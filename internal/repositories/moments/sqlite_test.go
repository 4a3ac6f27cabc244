package moments

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/dbx"
	"github.com/dmitrijs2005/baconnect/internal/migrations"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db, dbx.DialectSQLite))
	return db
}

func mustCreate(t *testing.T, r Repository, m models.Moment) models.Moment {
	t.Helper()
	got, err := r.Create(context.Background(), &m)
	require.NoError(t, err)
	return *got
}

func ids(ms []models.Moment) []int64 {
	out := make([]int64, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func TestGetAll_EmptyIsNotError(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	got, err := r.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestGetAll_NewestFirstTieByID(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	a := mustCreate(t, r, models.Moment{ImageURI: "a", Description: "a", Date: 100})
	b := mustCreate(t, r, models.Moment{ImageURI: "b", Description: "b", Date: 300})
	c := mustCreate(t, r, models.Moment{ImageURI: "c", Description: "c", Date: 100})

	got, err := r.GetAll(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff([]int64{b.ID, c.ID, a.ID}, ids(got)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateGetUpdateDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	m := mustCreate(t, r, models.Moment{ImageURI: "file:///m.jpg", Description: "Mate en Palermo", Date: 1000, Location: "Palermo"})
	assert.Positive(t, m.ID)

	got, err := r.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, *got)

	m.Description = "Mate en Plaza Serrano"
	m.Location = "Buenos Aires (-34.5889, -58.4306)"
	require.NoError(t, r.Update(ctx, &m))

	got, err = r.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, *got)

	require.NoError(t, r.DeleteByID(ctx, m.ID))
	_, err = r.GetByID(ctx, m.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, r.DeleteByID(ctx, m.ID), common.ErrorNotFound)
	require.ErrorIs(t, r.Update(ctx, &m), common.ErrorNotFound)
}

func TestSearch(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	tango := mustCreate(t, r, models.Moment{ImageURI: "1", Description: "Milonga de TANGO", Date: 10, Location: "San Telmo"})
	boca := mustCreate(t, r, models.Moment{ImageURI: "2", Description: "Colores", Date: 20, Location: "La Boca"})
	pct := mustCreate(t, r, models.Moment{ImageURI: "3", Description: "50% off", Date: 30, Location: ""})
	rio := mustCreate(t, r, models.Moment{ImageURI: "4", Description: "Atardecer porteño", Date: 40, Location: "Río de la Plata"})

	tests := []struct {
		name string
		text string
		mode models.MatchMode
		want []int64
	}{
		{"description insensitive", "tango", models.MatchInsensitive, []int64{tango.ID}},
		{"description sensitive miss", "tango", models.MatchSensitive, []int64{}},
		{"description sensitive hit", "TANGO", models.MatchSensitive, []int64{tango.ID}},
		{"location", "boca", models.MatchInsensitive, []int64{boca.ID}},
		{"wildcard is literal", "%", models.MatchInsensitive, []int64{pct.ID}},
		{"underscore is literal", "_", models.MatchInsensitive, []int64{}},
		{"accented upper folds", "PORTEÑO", models.MatchInsensitive, []int64{rio.ID}},
		{"accented location folds", "RÍO", models.MatchInsensitive, []int64{rio.ID}},
		{"accented sensitive miss", "PORTEÑO", models.MatchSensitive, []int64{}},
		{"empty matches all", "", models.MatchInsensitive, []int64{rio.ID, pct.ID, boca.ID, tango.ID}},
		{"no match", "recoleta", models.MatchInsensitive, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Search(ctx, tt.text, tt.mode)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
