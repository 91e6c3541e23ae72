package fanout

import (
	"context"
	"sync"
)

// ResolveFunc resolves one input into an output. Returning ok=false drops
// the input from the results; the resolver is expected to have handled (or
// logged) whatever caused the skip.
type ResolveFunc[In, Out any] func(ctx context.Context, in In) (Out, bool)

// Resolve maps inputs through fn with at most workers concurrent calls and
// returns the outputs in input order, skipped entries removed. Workers <= 1
// degenerates to a sequential loop.
//
// Resolve itself never fails; per-input failure handling is the resolver's
// job. Cancellation of ctx stops the dispatch of further inputs; entries
// not dispatched are dropped as if skipped.
func Resolve[In, Out any](ctx context.Context, inputs []In, workers int, fn ResolveFunc[In, Out]) []Out {
	if len(inputs) == 0 {
		return nil
	}

	if workers <= 1 {
		results := make([]Out, 0, len(inputs))
		for _, in := range inputs {
			if ctx.Err() != nil {
				break
			}
			if out, ok := fn(ctx, in); ok {
				results = append(results, out)
			}
		}
		return results
	}

	if workers > len(inputs) {
		workers = len(inputs)
	}

	type task struct {
		index int
		input In
	}

	type slot struct {
		value Out
		ok    bool
	}

	tasks := make(chan task)
	slots := make([]slot, len(inputs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tk := range tasks {
				out, ok := fn(ctx, tk.input)
				slots[tk.index] = slot{value: out, ok: ok}
			}
		}()
	}

	for i, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		tasks <- task{index: i, input: in}
	}
	close(tasks)
	wg.Wait()

	// Reassemble in input order, dropping skipped entries.
	results := make([]Out, 0, len(inputs))
	for _, s := range slots {
		if s.ok {
			results = append(results, s.value)
		}
	}
	return results
}
