// Package aggregate derives per-moment comment figures from a single list
// of comments, so a feed never queries comments moment by moment.
package aggregate

import (
	"context"

	"github.com/dmitrijs2005/baconnect/internal/live"
	"github.com/dmitrijs2005/baconnect/internal/models"
)

// GroupByMoment buckets comments by MomentID, keeping their input order.
func GroupByMoment(comments []models.Comment) map[int64][]models.Comment {
	out := make(map[int64][]models.Comment)
	for _, c := range comments {
		out[c.MomentID] = append(out[c.MomentID], c)
	}
	return out
}

// Counts returns the number of comments per moment id. Moments without
// comments are absent; a lookup yields 0.
func Counts(comments []models.Comment) map[int64]int {
	out := make(map[int64]int)
	for _, c := range comments {
		out[c.MomentID]++
	}
	return out
}

type Summary struct {
	Total  int
	Unread int
}

// Summaries counts total and unread comments per moment for viewer.
// A comment is unread when it is newer than lastSeen[momentID] and was not
// written by viewer. A missing lastSeen entry means nothing was seen yet.
func Summaries(comments []models.Comment, viewer string, lastSeen map[int64]int64) map[int64]Summary {
	out := make(map[int64]Summary)
	for _, c := range comments {
		s := out[c.MomentID]
		s.Total++
		if c.Author != viewer && c.Timestamp > lastSeen[c.MomentID] {
			s.Unread++
		}
		out[c.MomentID] = s
	}
	return out
}

type FeedItem struct {
	Moment       models.Moment
	CommentCount int
}

// Items pairs each moment with its comment count, keeping moment order.
func Items(moments []models.Moment, comments []models.Comment) []FeedItem {
	counts := Counts(comments)
	out := make([]FeedItem, 0, len(moments))
	for _, m := range moments {
		out = append(out, FeedItem{Moment: m, CommentCount: counts[m.ID]})
	}
	return out
}

// Feed emits Items for the latest moments and comments whenever either
// input changes.
func Feed(ctx context.Context, moments <-chan []models.Moment, comments <-chan []models.Comment) <-chan []FeedItem {
	return live.CombineLatest(ctx, moments, comments, Items)
}
