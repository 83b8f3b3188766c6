package decoder

import (
	"context"
	"sync"

	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
)

// Result is the outcome of decoding one message in a batch
type Result struct {
	Index    int
	Message  *fix.DecodedMessage
	Checksum ChecksumResult
	Err      error
}

// DecodeAll decodes and verifies raws with up to workers goroutines.
// Results keep input order. Items not started before ctx is cancelled carry ctx.Err().
func (d *Decoder) DecodeAll(ctx context.Context, raws []string, workers int) []Result {
	results := make([]Result, len(raws))
	if len(raws) == 0 {
		return results
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(raws) {
		workers = len(raws)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = d.decodeOne(i, raws[i])
			}
		}()
	}

	next := 0
feed:
	for ; next < len(raws); next++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case jobs <- next:
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(raws); i++ {
		results[i] = Result{Index: i, Err: ctx.Err()}
	}
	return results
}

func (d *Decoder) decodeOne(i int, raw string) Result {
	msg, err := d.Decode(raw)
	if err != nil {
		return Result{Index: i, Err: err}
	}
	return Result{Index: i, Message: msg, Checksum: d.Verify(msg)}
}
