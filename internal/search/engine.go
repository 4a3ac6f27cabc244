// Package search combines stored moments with the seed list for a free-text
// query and keeps the result live while the query changes.
package search

import (
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/baconnect/internal/live"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/metrics"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/dmitrijs2005/baconnect/internal/seed"
)

// MomentSource is the part of the query layer the engine reads from.
type MomentSource interface {
	AllMoments(ctx context.Context) <-chan []models.Moment
	MomentsMatching(ctx context.Context, text string) <-chan []models.Moment
	MatchMode() models.MatchMode
}

type Engine struct {
	src     MomentSource
	seeds   *seed.Set
	log     logging.Logger
	metrics *metrics.Metrics
}

// NewEngine returns an engine merging src with seeds. A nil seeds set
// disables seed content.
func NewEngine(src MomentSource, seeds *seed.Set, log logging.Logger, m *metrics.Metrics) *Engine {
	return &Engine{src: src, seeds: seeds, log: log.With("module", "search"), metrics: m}
}

// Search emits the merged result for query, newest first, and again on
// every change to the stored moments. A blank query selects everything.
func (e *Engine) Search(ctx context.Context, query string) <-chan []models.Moment {
	e.metrics.Search()
	q := strings.TrimSpace(query)

	if q == "" {
		all := e.seeds.All()
		return live.Map(ctx, e.src.AllMoments(ctx), func(stored []models.Moment) []models.Moment {
			return Merge(all, stored)
		})
	}

	matched := e.seeds.Matching(q, e.src.MatchMode())
	return live.Map(ctx, e.src.MomentsMatching(ctx, q), func(stored []models.Moment) []models.Moment {
		return Merge(matched, stored)
	})
}

// Results follows a stream of queries, switching to the latest one. The
// subscription of a superseded query is cancelled and nothing it emits
// afterwards is forwarded.
func (e *Engine) Results(ctx context.Context, queries <-chan string) <-chan []models.Moment {
	return live.SwitchLatest(ctx, queries, func(ctx context.Context, q string) <-chan []models.Moment {
		e.log.Debug(ctx, "query switched", "query", q)
		return e.Search(ctx, q)
	})
}

// Merge returns seeds followed by stored, stably sorted by date descending.
// On equal dates seeds come first.
func Merge(seeds, stored []models.Moment) []models.Moment {
	out := make([]models.Moment, 0, len(seeds)+len(stored))
	out = append(out, seeds...)
	out = append(out, stored...)
	slices.SortStableFunc(out, func(a, b models.Moment) int {
		switch {
		case a.Date > b.Date:
			return -1
		case a.Date < b.Date:
			return 1
		}
		return 0
	})
	return out
}
