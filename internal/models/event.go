package models

// EventStatus is the lifecycle stage of a community event.
type EventStatus string

const (
	EventUpcoming EventStatus = "upcoming"
	EventOngoing  EventStatus = "ongoing"
	EventFinished EventStatus = "finished"
)

// ParseEventStatus accepts the lowercase status names; ok is false otherwise.
func ParseEventStatus(s string) (EventStatus, bool) {
	switch st := EventStatus(s); st {
	case EventUpcoming, EventOngoing, EventFinished:
		return st, true
	}
	return "", false
}

// GeoPoint is a WGS84 coordinate. The zero value is the fallback used when
// geocoding fails.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// IsZero reports whether p is the fallback coordinate.
func (p GeoPoint) IsZero() bool {
	return p.Lat == 0 && p.Lon == 0
}

type Event struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	Category    string
	Status      EventStatus
	Location    GeoPoint
	Address     string
	CreatorID   string
	Subscribers []string
}

// HasSubscriber reports whether userID already joined e.
func (e Event) HasSubscriber(userID string) bool {
	for _, s := range e.Subscribers {
		if s == userID {
			return true
		}
	}
	return false
}
