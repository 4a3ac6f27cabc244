package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/dmitrijs2005/baconnect/internal/services"
)

// parseEventFilter reads "cat:<category>" and "status:<status>" tokens;
// the remaining words are the text filter.
func parseEventFilter(args []string) (services.EventFilter, error) {
	var f services.EventFilter
	var words []string
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "cat:"):
			f.Category = strings.TrimPrefix(arg, "cat:")
		case strings.HasPrefix(arg, "status:"):
			st, ok := models.ParseEventStatus(strings.TrimPrefix(arg, "status:"))
			if !ok {
				return f, fmt.Errorf("%w: status is one of upcoming, ongoing, finished", errUsage)
			}
			f.Status = st
		default:
			words = append(words, arg)
		}
	}
	f.Text = strings.Join(words, " ")
	return f, nil
}

func (a *App) Events(ctx context.Context, args []string) error {
	f, err := parseEventFilter(args)
	if err != nil {
		return err
	}

	events := a.events.Filter(f)
	if len(events) == 0 {
		a.println("No events found")
		return nil
	}

	me := a.author(ctx)
	for _, e := range events {
		var tags []string
		if a.events.IsAdmin(e.CreatorID) {
			tags = append(tags, "official")
		}
		if e.HasSubscriber(me) {
			tags = append(tags, "subscribed")
		}
		line := fmt.Sprintf("[%s] %s | %s | %s | %s", e.ID, e.Title, e.Category, e.Status, e.Address)
		if !e.Location.IsZero() {
			line += fmt.Sprintf(" (%.4f, %.4f)", e.Location.Lat, e.Location.Lon)
		}
		if len(tags) > 0 {
			line += " [" + strings.Join(tags, ", ") + "]"
		}
		a.println(line)
	}
	return nil
}

func (a *App) AddEvent(ctx context.Context) error {
	var e models.Event
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Title", &e.Title},
		{"Description", &e.Description},
		{"Category", &e.Category},
		{"Address", &e.Address},
		{"Image URL (optional)", &e.ImageURL},
	}
	for _, f := range fields {
		v, err := a.prompt(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	e.CreatorID = a.author(ctx)

	added, err := a.events.Add(ctx, e)
	if errors.Is(err, common.ErrRequiredFieldsMissing) {
		a.println("Title and address are required")
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("Event %s created\n", added.ID)
	return nil
}

func (a *App) Subscribe(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: subscribe <event id>", errUsage)
	}
	err := a.events.Subscribe(args[0], a.author(ctx))
	if errors.Is(err, common.ErrorNotFound) {
		a.println("Event not found")
		return nil
	}
	if err != nil {
		return err
	}
	a.println("Subscribed")
	return nil
}
