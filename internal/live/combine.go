package live

import "context"

// SwitchLatest runs fn for each key received and forwards only the values
// of the most recent inner sequence. Receiving a new key cancels the
// previous inner context; a value still pending from it is dropped.
//
// Between sends only the newest value is kept.
func SwitchLatest[K, T any](ctx context.Context, keys <-chan K, fn func(context.Context, K) <-chan T) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		var (
			inner   <-chan T
			cancel  context.CancelFunc = func() {}
			pending T
			has     bool
		)
		defer func() { cancel() }()

		for {
			if keys == nil && inner == nil && !has {
				return
			}

			var send chan<- T
			if has {
				send = out
			}

			select {
			case <-ctx.Done():
				return

			case k, ok := <-keys:
				if !ok {
					keys = nil
					continue
				}
				cancel()
				var innerCtx context.Context
				innerCtx, cancel = context.WithCancel(ctx)
				inner = fn(innerCtx, k)
				var zero T
				pending, has = zero, false

			case v, ok := <-inner:
				if !ok {
					inner = nil
					continue
				}
				pending, has = v, true

			case send <- pending:
				var zero T
				pending, has = zero, false
			}
		}
	}()

	return out
}

// CombineLatest emits fn(a, b) with the latest value of each input once
// both have produced at least one value, and again whenever either changes.
// The output closes when ctx ends or both inputs are closed.
func CombineLatest[A, B, R any](ctx context.Context, as <-chan A, bs <-chan B, fn func(A, B) R) <-chan R {
	out := make(chan R)

	go func() {
		defer close(out)

		var (
			a          A
			b          B
			haveA      bool
			haveB      bool
			pending    R
			hasPending bool
		)

		for {
			if as == nil && bs == nil && !hasPending {
				return
			}

			var send chan<- R
			if hasPending {
				send = out
			}

			select {
			case <-ctx.Done():
				return

			case v, ok := <-as:
				if !ok {
					as = nil
					continue
				}
				a, haveA = v, true

			case v, ok := <-bs:
				if !ok {
					bs = nil
					continue
				}
				b, haveB = v, true

			case send <- pending:
				var zero R
				pending, hasPending = zero, false
				continue
			}

			if haveA && haveB {
				pending, hasPending = fn(a, b), true
			}
		}
	}()

	return out
}
