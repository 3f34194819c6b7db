package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const stageBuffer = 50

// Stage defines the interface for a pipeline stage.
// Each stage processes input from an input channel and sends results to an output channel.
// The pipeline closes the output channel once Execute returns.
type Stage interface {
	Execute(ctx context.Context, input <-chan interface{}, output chan<- interface{}, logger *zap.Logger) error
}

// Named is implemented by stages that want a readable name in logs and errors.
type Named interface {
	Name() string
}

// Pipeline manages a sequence of stages that process data in a chain.
type Pipeline struct {
	stages []Stage     // List of stages in the pipeline
	logger *zap.Logger // Logger for pipeline-wide logging
}

// New creates a new Pipeline instance with the given logger.
func New(logger *zap.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
	}
}

// AddStage adds a stage to the pipeline's sequence.
func (p *Pipeline) AddStage(stage Stage) {
	p.stages = append(p.stages, stage)
}

// Run executes the pipeline with the given input channel.
//
// The pipeline chains stages such that each stage's output becomes the next stage's input.
// The first stage uses the provided input channel, and subsequent stages use channels created internally.
// Whatever the last stage emits is discarded. The caller must close input eventually.
//
// The first stage error cancels the context every stage sees, so later stages can
// tell a failed run from a finished one once their input closes.
//
// Run returns ctx.Err() if the context ends first, otherwise the joined errors of every failed stage.
func (p *Pipeline) Run(ctx context.Context, input <-chan interface{}) error {
	if len(p.stages) == 0 {
		p.logger.Warn("no stages in pipeline")
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	channels := make([]chan interface{}, len(p.stages))
	for i := range channels {
		channels[i] = make(chan interface{}, stageBuffer)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	wg.Add(len(p.stages))

	for i, stage := range p.stages {
		inChan := input
		if i > 0 {
			inChan = channels[i-1]
		}
		outChan := channels[i]

		go func(stage Stage, in <-chan interface{}, out chan<- interface{}, idx int) {
			defer wg.Done()
			defer close(out)
			name := stageName(stage, idx)
			err := stage.Execute(runCtx, in, out, p.logger.With(zap.String("stage", name)))
			if err != nil {
				mu.Lock()
				// Cancellation caused by an earlier failed stage is not a failure of its own.
				followOn := len(errs) > 0 && errors.Is(err, context.Canceled) && ctx.Err() == nil
				if !followOn {
					p.logger.Error("stage execution failed",
						zap.Int("stage", idx),
						zap.String("name", name),
						zap.Error(err))
					errs = append(errs, fmt.Errorf("stage %s: %w", name, err))
				}
				mu.Unlock()
				// Cancel before the deferred close(out), so downstream sees it.
				cancel()
			}
			// Let upstream stages finish if this one stopped reading early.
			for range in {
			}
		}(stage, inChan, outChan, i)
	}

	go func() {
		for range channels[len(channels)-1] {
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		mu.Lock()
		defer mu.Unlock()
		if len(errs) > 0 {
			p.logger.Warn("pipeline completed with errors", zap.Int("failed_stages", len(errs)))
			return errors.Join(errs...)
		}
		p.logger.Info("pipeline completed successfully")
		return nil
	case <-ctx.Done():
		p.logger.Info("pipeline canceled", zap.Error(ctx.Err()))
		return ctx.Err()
	}
}

func stageName(stage Stage, idx int) string {
	if n, ok := stage.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("#%d", idx)
}
