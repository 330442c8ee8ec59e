package pipeline

import (
	"context"
	"sort"
	"sync"

	"github.com/quantbyte/signalscan/models"
)

// runParallel fans one goroutine out per instrument. Each pipeline run is
// fully independent; the only shared state is the record collector, guarded
// by its mutex. Records carry their instrument tag, so append order does
// not matter and the final sort restores a stable report order.
func (p *Pipeline) runParallel(ctx context.Context, symbols []string) []models.EvalRecord {
	var (
		mu      sync.Mutex
		records []models.EvalRecord
		wg      sync.WaitGroup
	)

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()

			recs, err := p.EvaluateInstrument(ctx, symbol)
			if err != nil {
				p.skip(symbol, err)
				return
			}

			mu.Lock()
			records = append(records, recs...)
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()

	return sortRecords(records)
}

func sortRecords(records []models.EvalRecord) []models.EvalRecord {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Instrument != records[j].Instrument {
			return records[i].Instrument < records[j].Instrument
		}
		return records[i].Algorithm < records[j].Algorithm
	})
	return records
}
