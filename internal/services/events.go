package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/geo"
	"github.com/dmitrijs2005/baconnect/internal/live"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/google/uuid"
)

const (
	AdminUserID   = "admin123"
	MusicCategory = "Música"
)

// EventFilter selects events. Empty fields match everything.
type EventFilter struct {
	Text     string
	Category string
	Status   models.EventStatus
}

func (f EventFilter) match(e models.Event) bool {
	if f.Text != "" && !models.MatchInsensitive.Contains(e.Title, f.Text) &&
		!models.MatchInsensitive.Contains(e.Description, f.Text) {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	return true
}

// EventService keeps community events in memory. Each instance owns its
// own list; nothing is shared between instances.
type EventService struct {
	geocoder geo.Geocoder
	notifier *live.Notifier
	log      logging.Logger

	mu     sync.RWMutex
	events []models.Event
}

// NewEventService creates the service with the default venues, geocoding
// their addresses. A failed lookup leaves the zero coordinate.
func NewEventService(ctx context.Context, g geo.Geocoder, n *live.Notifier, log logging.Logger) *EventService {
	s := &EventService{geocoder: g, notifier: n, log: log.With("module", "events")}
	for _, e := range defaultEvents() {
		e.Location = geo.Resolve(ctx, g, s.log, e.Address)
		s.events = append(s.events, e)
	}
	return s
}

func defaultEvents() []models.Event {
	return []models.Event{
		{
			ID:          "moscu_club_id",
			Title:       "Moscu Club",
			Description: "Una noche inolvidable con los mejores DJs de música electrónica.",
			Category:    MusicCategory,
			Status:      models.EventUpcoming,
			Address:     "Av. Costanera Rafael Obligado 6151, C1428 Cdad. Autónoma de Buenos Aires",
			CreatorID:   AdminUserID,
		},
		{
			ID:          "niceto_club_id",
			Title:       "Niceto Club",
			Description: "Discoteca y sala de conciertos en Palermo, uno de los lugares más emblemáticos de la noche porteña.",
			Category:    MusicCategory,
			Status:      models.EventUpcoming,
			Address:     "Cnel. Niceto Vega 5510, C1414BFD Cdad. Autónoma de Buenos Aires",
			CreatorID:   AdminUserID,
		},
	}
}

// Add geocodes e.Address, assigns a new id and stores the event.
func (s *EventService) Add(ctx context.Context, e models.Event) (models.Event, error) {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" || strings.TrimSpace(e.Address) == "" {
		return models.Event{}, common.ErrRequiredFieldsMissing
	}
	if e.Status == "" {
		e.Status = models.EventUpcoming
	}
	e.ID = uuid.NewString()
	e.Location = geo.Resolve(ctx, s.geocoder, s.log, e.Address)
	e.Subscribers = nil

	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()

	s.notifier.Notify(live.TableEvents)
	s.log.Info(ctx, "event added", "id", e.ID, "title", e.Title)
	return e, nil
}

func (s *EventService) Get(id string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.ID == id {
			return cloneEvent(e), nil
		}
	}
	return models.Event{}, common.ErrorNotFound
}

// Filter returns matching events in insertion order.
func (s *EventService) Filter(f EventFilter) []models.Event {
	f.Text = strings.TrimSpace(f.Text)

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Event{}
	for _, e := range s.events {
		if f.match(e) {
			out = append(out, cloneEvent(e))
		}
	}
	return out
}

// Subscribe adds userID to the event's subscribers once.
func (s *EventService) Subscribe(eventID, userID string) error {
	s.mu.Lock()
	i := slices.IndexFunc(s.events, func(e models.Event) bool { return e.ID == eventID })
	if i < 0 {
		s.mu.Unlock()
		return common.ErrorNotFound
	}
	changed := !s.events[i].HasSubscriber(userID)
	if changed {
		s.events[i].Subscribers = append(s.events[i].Subscribers, userID)
	}
	s.mu.Unlock()

	if changed {
		s.notifier.Notify(live.TableEvents)
	}
	return nil
}

func (s *EventService) IsAdmin(userID string) bool {
	return userID == AdminUserID
}

// Watch emits Filter(f) now and after every change to the events.
func (s *EventService) Watch(ctx context.Context, f EventFilter) <-chan []models.Event {
	return live.Watch(ctx, s.notifier, s.log, func(context.Context) ([]models.Event, error) {
		return s.Filter(f), nil
	}, live.TableEvents)
}

func cloneEvent(e models.Event) models.Event {
	e.Subscribers = slices.Clone(e.Subscribers)
	return e
}
