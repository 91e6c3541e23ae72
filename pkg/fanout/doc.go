// Package fanout provides bounded-concurrency resolution of a slice of
// inputs with strict output-order preservation.
//
// The catalog service uses it to resolve per-entry detail records for one
// listing page: entries are handed to a small worker pool, each worker
// resolves one entry at a time, and results are reassembled in input order.
// A resolver may report "skip" for an entry; skipped entries are dropped
// from the output without disturbing the order of the rest.
//
// Example usage:
//
//	results := fanout.Resolve(ctx, names, 4, func(ctx context.Context, name string) (Summary, bool) {
//		detail, err := svc.Detail(ctx, name)
//		if err != nil || detail == nil {
//			return Summary{}, false
//		}
//		return project(detail), true
//	})
//
// With workers <= 1 the inputs are resolved sequentially in a plain loop,
// which is the default operating mode of the catalog service.
package fanout
