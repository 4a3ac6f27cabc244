package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/live"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder map[string]models.GeoPoint

func (g stubGeocoder) Geocode(_ context.Context, address string) (models.GeoPoint, error) {
	for k, p := range g {
		if strings.Contains(address, k) {
			return p, nil
		}
	}
	return models.GeoPoint{}, errors.New("no result")
}

func newEventService(t *testing.T) *EventService {
	t.Helper()
	g := stubGeocoder{"Niceto": {Lat: -34.5866, Lon: -58.4378}, "Defensa": {Lat: -34.62, Lon: -58.37}}
	return NewEventService(context.Background(), g, live.NewNotifier(), logging.Discard())
}

func TestEvents_DefaultsGeocodedWithFallback(t *testing.T) {
	s := newEventService(t)

	moscu, err := s.Get("moscu_club_id")
	require.NoError(t, err)
	assert.True(t, moscu.Location.IsZero(), "failed lookup falls back to zero")
	assert.Equal(t, MusicCategory, moscu.Category)
	assert.Equal(t, models.EventUpcoming, moscu.Status)
	assert.Equal(t, AdminUserID, moscu.CreatorID)

	niceto, err := s.Get("niceto_club_id")
	require.NoError(t, err)
	assert.InDelta(t, -34.5866, niceto.Location.Lat, 1e-9)

	_, err = s.Get("nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestEvents_AddAndFilter(t *testing.T) {
	s := newEventService(t)
	ctx := context.Background()

	_, err := s.Add(ctx, models.Event{Title: " ", Address: "x"})
	require.ErrorIs(t, err, common.ErrRequiredFieldsMissing)

	feria, err := s.Add(ctx, models.Event{
		Title:       "Feria de San Telmo",
		Description: "Antigüedades y tango callejero",
		Category:    "Cultura",
		Status:      models.EventOngoing,
		Address:     "Defensa 1000",
		CreatorID:   "ana",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, feria.ID)
	assert.InDelta(t, -34.62, feria.Location.Lat, 1e-9)

	titles := func(es []models.Event) []string {
		var out []string
		for _, e := range es {
			out = append(out, e.Title)
		}
		return out
	}

	assert.Len(t, s.Filter(EventFilter{}), 3)
	assert.Equal(t, []string{"Feria de San Telmo"}, titles(s.Filter(EventFilter{Text: "TANGO"})))
	assert.Equal(t, []string{"Moscu Club", "Niceto Club"}, titles(s.Filter(EventFilter{Category: MusicCategory})))
	assert.Equal(t, []string{"Feria de San Telmo"}, titles(s.Filter(EventFilter{Status: models.EventOngoing})))
	assert.Empty(t, s.Filter(EventFilter{Text: "club", Status: models.EventFinished}))
}

func TestEvents_SubscribeOnceAndWatch(t *testing.T) {
	s := newEventService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := s.Watch(ctx, EventFilter{Text: "niceto"})
	first := recv(t, w)
	require.Len(t, first, 1)
	assert.Empty(t, first[0].Subscribers)

	require.NoError(t, s.Subscribe("niceto_club_id", "ana"))
	require.NoError(t, s.Subscribe("niceto_club_id", "ana"))
	require.ErrorIs(t, s.Subscribe("nope", "ana"), common.ErrorNotFound)

	got := recv(t, w)
	assert.Equal(t, []string{"ana"}, got[0].Subscribers)

	assert.True(t, s.IsAdmin(AdminUserID))
	assert.False(t, s.IsAdmin("ana"))
}

func TestEvents_InstancesAreIndependent(t *testing.T) {
	a := newEventService(t)
	b := newEventService(t)

	_, err := a.Add(context.Background(), models.Event{Title: "Solo en A", Address: "Defensa 1"})
	require.NoError(t, err)

	assert.Len(t, a.Filter(EventFilter{}), 3)
	assert.Len(t, b.Filter(EventFilter{}), 2)
}
