package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/baconnect/internal/aggregate"
	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/dmitrijs2005/baconnect/internal/timex"
)

var errUsage = errors.New("usage")

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	return id, nil
}

func formatDate(ms int64) string {
	return timex.FromMillis(ms).Format("02/01/2006 15:04")
}

// Feed prints every moment, newest first, with comment totals and the
// number of comments added since the moment was last opened.
func (a *App) Feed(ctx context.Context) error {
	return a.listMoments(ctx, "")
}

// Search prints the moments whose description or location contains text.
func (a *App) Search(ctx context.Context, text string) error {
	return a.listMoments(ctx, text)
}

func (a *App) listMoments(ctx context.Context, text string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	moments, err := first(ctx, a.engine.Search(ctx, text))
	if err != nil {
		return err
	}
	comments, err := a.queries.ListAllComments(ctx)
	if err != nil {
		return err
	}

	a.printMoments(moments, aggregate.Summaries(comments, a.author(ctx), a.lastSeen))
	return nil
}

func (a *App) printMoments(moments []models.Moment, summaries map[int64]aggregate.Summary) {
	if len(moments) == 0 {
		a.println("No moments found")
		return
	}
	for _, m := range moments {
		s := summaries[m.ID]
		line := fmt.Sprintf("[%d] %s | %s | %s (%d comments", m.ID, formatDate(m.Date), m.Location, m.Description, s.Total)
		if s.Unread > 0 {
			line += fmt.Sprintf(", %d new", s.Unread)
		}
		a.println(line + ")")
	}
}

// Show prints one moment with its comments and marks them as seen.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "show <id>")
	if err != nil {
		return err
	}
	m, err := a.moments.Get(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		a.println("Moment not found")
		return nil
	}
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	comments, err := first(ctx, a.comments.ForMoment(ctx, id))
	if err != nil {
		return err
	}

	a.printf("%s\n%s | %s\nImage: %s\n", m.Description, formatDate(m.Date), m.Location, a.moments.ImageURL(ctx, *m))
	if m.IsSeed() {
		a.println("(community post)")
	}

	me := a.author(ctx)
	a.printf("Comments (%d):\n", len(comments))
	for _, c := range comments {
		mark := ""
		if a.comments.IsOwn(c, me) {
			mark = " (yours)"
		}
		a.printf("  [%d] %s, %s: %s%s\n", c.ID, c.Author, formatDate(c.Timestamp), c.Content, mark)
	}

	if len(comments) > 0 {
		a.lastSeen[id] = comments[0].Timestamp
	}
	return nil
}

func (a *App) AddMoment(ctx context.Context) error {
	image, err := a.prompt("Image (local file or URL)")
	if err != nil {
		return err
	}
	a.outMu.Lock()
	description, err := GetMultiline(a.reader, "Description", a.out)
	a.outMu.Unlock()
	if err != nil {
		return err
	}

	m, err := a.moments.Add(ctx, image, description)
	if errors.Is(err, common.ErrRequiredFieldsMissing) {
		a.println("Image and description are required")
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("Moment %d saved at %s\n", m.ID, m.Location)
	return nil
}

// EditMoment asks for a new description and location; blank answers keep
// the current value.
func (a *App) EditMoment(ctx context.Context, args []string) error {
	id, err := parseID(args, "edit <id>")
	if err != nil {
		return err
	}
	m, err := a.moments.Get(ctx, id)
	if err != nil {
		return a.momentError(err)
	}
	if m.IsSeed() {
		return a.momentError(common.ErrSeedReadOnly)
	}

	description, err := a.prompt("Description (blank keeps current)")
	if err != nil {
		return err
	}
	location, err := a.prompt("Location (blank keeps current)")
	if err != nil {
		return err
	}
	if description == "" {
		description = m.Description
	}
	if location == "" {
		location = m.Location
	}

	if err := a.moments.Edit(ctx, id, description, location); err != nil {
		return a.momentError(err)
	}
	a.println("Moment updated")
	return nil
}

func (a *App) ReplaceImage(ctx context.Context, args []string) error {
	id, err := parseID(args, "image <id>")
	if err != nil {
		return err
	}
	image, err := a.prompt("New image (local file or URL)")
	if err != nil {
		return err
	}
	if err := a.moments.ReplaceImage(ctx, id, image); err != nil {
		return a.momentError(err)
	}
	a.println("Image replaced")
	return nil
}

func (a *App) DeleteMoment(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete <id>")
	if err != nil {
		return err
	}
	if err := a.moments.Delete(ctx, id); err != nil {
		return a.momentError(err)
	}
	delete(a.lastSeen, id)
	a.println("Moment deleted")
	return nil
}

// momentError turns expected failures into messages.
func (a *App) momentError(err error) error {
	switch {
	case errors.Is(err, common.ErrSeedReadOnly):
		a.println("Community posts cannot be changed")
	case errors.Is(err, common.ErrorNotFound):
		a.println("Moment not found")
	case errors.Is(err, common.ErrRequiredFieldsMissing):
		a.println("A value is required")
	default:
		return err
	}
	return nil
}

func (a *App) Comment(ctx context.Context, args []string) error {
	id, err := parseID(args, "comment <moment id>")
	if err != nil {
		return err
	}
	content, err := a.prompt("Your comment")
	if err != nil {
		return err
	}

	c, err := a.comments.Add(ctx, id, a.author(ctx), content)
	if errors.Is(err, common.ErrRequiredFieldsMissing) {
		a.println("Comment is empty")
		return nil
	}
	if err != nil {
		return err
	}
	a.lastSeen[id] = c.Timestamp
	a.printf("Comment %d added\n", c.ID)
	return nil
}

func (a *App) Uncomment(ctx context.Context, args []string) error {
	id, err := parseID(args, "uncomment <comment id>")
	if err != nil {
		return err
	}

	err = a.comments.Delete(ctx, id, a.author(ctx))
	switch {
	case errors.Is(err, common.ErrNotCommentAuthor):
		a.println("You can only delete your own comments")
	case errors.Is(err, common.ErrorNotFound):
		a.println("Comment not found")
	case err != nil:
		return err
	default:
		a.println("Comment deleted")
	}
	return nil
}

// LiveSearch re-runs the search on every typed line, printing results as
// they change, until "/q" or end of input. A blank line shows everything.
func (a *App) LiveSearch(ctx context.Context) error {
	a.println("Live search: type to filter, empty line shows everything, /q to leave")

	ctx, cancel := context.WithCancel(ctx)
	queries := make(chan string)
	results := a.engine.Results(ctx, queries)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for moments := range results {
			a.printf("-- %d result(s)\n", len(moments))
			a.printMoments(moments, nil)
		}
	}()

	defer func() {
		close(queries)
		cancel()
		<-done
	}()

	send := func(q string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case queries <- q:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := send(""); err != nil {
		return err
	}
	for {
		line, err := readLine(a.reader)
		if errors.Is(err, io.EOF) || line == "/q" {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read query: %w", err)
		}
		if err := send(strings.TrimSpace(line)); err != nil {
			return err
		}
	}
}
