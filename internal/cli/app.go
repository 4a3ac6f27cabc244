// Package cli is the interactive terminal client: a REPL over the moments
// feed, comments, profile, events and chat.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/config"
	"github.com/dmitrijs2005/baconnect/internal/geo"
	"github.com/dmitrijs2005/baconnect/internal/live"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/media"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/dmitrijs2005/baconnect/internal/query"
	"github.com/dmitrijs2005/baconnect/internal/schedule"
	"github.com/dmitrijs2005/baconnect/internal/search"
	"github.com/dmitrijs2005/baconnect/internal/seed"
	"github.com/dmitrijs2005/baconnect/internal/services"
	"github.com/dmitrijs2005/baconnect/internal/store"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	store   *store.Store
	queries *query.Queries
	engine  *search.Engine
	sched   *schedule.Scheduler

	auth     *services.AuthService
	moments  *services.MomentService
	comments *services.CommentService
	events   *services.EventService
	chat     *services.ChatService

	reader *bufio.Reader

	outMu sync.Mutex
	out   io.Writer

	// lastSeen holds, per moment, the newest comment timestamp the user
	// has been shown.
	lastSeen map[int64]int64
}

// NewApp opens the store and wires every service for an interactive
// session on stdin/stdout.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	return newApp(ctx, c, log, os.Stdin, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	st, err := store.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	notifier := live.NewNotifier()
	q := query.New(st, notifier, log, query.WithMatchMode(c.Mode()))

	var seeds *seed.Set
	if c.SeedsEnabled {
		seeds = seed.Default(time.Now())
	}

	var locator geo.Locator
	if c.HasHome() {
		locator = geo.FixedLocator{Point: models.GeoPoint{Lat: c.HomeLat, Lon: c.HomeLon}}
	}

	var geocoder geo.Geocoder
	if c.GeocoderURL != "" {
		geocoder = geo.NewNominatimGeocoder(c.GeocoderURL, c.GeocoderTimeout)
	}

	images := media.NewS3ImageStore(media.Config{
		Region:       c.S3Region,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
		BaseEndpoint: c.S3BaseEndpoint,
		Bucket:       c.S3Bucket,
		PresignTTL:   c.S3PresignTTL,
	})

	chatAuthor := c.Author
	if chatAuthor == "" {
		chatAuthor = common.LocalAuthor
	}
	sched := schedule.New()

	return &App{
		config:   c,
		log:      log,
		store:    st,
		queries:  q,
		engine:   search.NewEngine(q, seeds, log, nil),
		sched:    sched,
		auth:     services.NewAuthService(q, log),
		moments:  services.NewMomentService(q, seeds, locator, images, log),
		comments: services.NewCommentService(q, log),
		events:   services.NewEventService(ctx, geocoder, notifier, log),
		chat:     services.NewChatService(notifier, sched, log, services.WithAuthor(chatAuthor)),
		reader:   bufio.NewReader(in),
		out:      out,
		lastSeen: make(map[int64]int64),
	}, nil
}

// Run starts the REPL and returns when the user quits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.println("Welcome to Buenos Aires Connect (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
	return nil
}

// Close cancels pending chat replies and closes the store.
func (a *App) Close() error {
	a.sched.Stop()
	return a.store.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, err := a.auth.CurrentUser(ctx)
	return err == nil
}

func (a *App) status(ctx context.Context) string {
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("(%s)", u.Username)
}

// author names the local user on comments and events.
func (a *App) author(ctx context.Context) string {
	if u, err := a.auth.CurrentUser(ctx); err == nil {
		return u.Username
	}
	if a.config.Author != "" {
		return a.config.Author
	}
	return common.LocalAuthor
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func (a *App) prompt(text string) (string, error) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	return getSimpleText(a.reader, text, a.out)
}

// first returns the first value of ch, or ctx's error.
func first[T any](ctx context.Context, ch <-chan T) (T, error) {
	select {
	case v, ok := <-ch:
		if ok {
			return v, nil
		}
	case <-ctx.Done():
	}
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	return zero, context.Canceled
}
var _ execIface = (*App)(nil)
