package renderer

import (
	"context"
	"sync"

	"goldilocks/internal/models"

	"go.uber.org/zap"
)

const defaultWorkers = 8

// Renderer is the middle pipeline stage. It turns each models.Record into a
// models.Rendered carrying the record's hash and debug string, using a bounded
// set of workers. Output order is not the input order; Index is preserved.
type Renderer struct {
	style   models.NullStyle
	workers int
}

// New creates a Renderer. A non-positive workers value selects the default.
func New(style models.NullStyle, workers int) *Renderer {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Renderer{style: style, workers: workers}
}

func (r *Renderer) Name() string { return "renderer" }

func (r *Renderer) Execute(ctx context.Context, input <-chan interface{}, output chan<- interface{}, logger *zap.Logger) error {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, r.workers)
	defer wg.Wait()

	count := 0
	for item := range input {
		rec, ok := item.(models.Record)
		if !ok {
			logger.Warn("invalid input type, expected Record", zap.Any("type", item))
			continue
		}

		if ctx.Err() == nil {
			select {
			case <-ctx.Done():
			case semaphore <- struct{}{}: // Acquire semaphore
			}
		}
		if ctx.Err() != nil {
			logger.Warn("rendering interrupted", zap.Error(ctx.Err()))
			return ctx.Err()
		}

		wg.Add(1)
		count++
		go func(rec models.Record) {
			defer wg.Done()
			defer func() { <-semaphore }() // Release semaphore

			rendered := r.Render(rec)
			select {
			case output <- rendered:
			case <-ctx.Done():
			}
		}(rec)
	}

	logger.Debug("rendered records", zap.Int("count", count), zap.Int("workers", r.workers))
	return nil
}

// Render computes the hash and debug string of a single record.
func (r *Renderer) Render(rec models.Record) models.Rendered {
	return models.Rendered{
		Index: rec.Index,
		URL:   rec.URL,
		Hash:  rec.URL.Hash(),
		Text:  rec.URL.Debug(r.style),
	}
}
