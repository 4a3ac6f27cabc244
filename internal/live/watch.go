package live

import (
	"context"

	"github.com/dmitrijs2005/baconnect/internal/logging"
)

// Watch emits load's result once and again after every change to tables,
// until ctx ends; then the returned channel is closed.
//
// The subscription is taken before the first load, so a write racing with
// the initial query still triggers a reload. A failing load is logged and
// skipped; the sequence keeps waiting for the next change.
func Watch[T any](ctx context.Context, n *Notifier, log logging.Logger, load func(context.Context) (T, error), tables ...Table) <-chan T {
	out := make(chan T)
	signal, unsubscribe := n.Subscribe(tables...)

	go func() {
		defer close(out)
		defer unsubscribe()

		for {
			v, err := load(ctx)
			switch {
			case err != nil && ctx.Err() != nil:
				return
			case err != nil:
				log.Error(ctx, "live reload failed", "tables", tables, "error", err)
			default:
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-signal:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Map applies fn to every value of in.
func Map[T, U any](ctx context.Context, in <-chan T, fn func(T) U) <-chan U {
	out := make(chan U)
	go func() {
		defer close(out)
		for {
			select {
			case v, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- fn(v):
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
