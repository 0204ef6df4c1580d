package engine

import (
	"context"
	"sync"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
)

// ExecuteBatch runs conversions one after another. A failed item does not
// stop the batch; its error goes to OnItemError and the next item starts.
// OnComplete fires exactly once after every item has settled.
func (e *Engine) ExecuteBatch(ctx context.Context, configs []*domain.ConversionConfig, callbacks *domain.BatchCallbacks) {
	if callbacks == nil {
		callbacks = &domain.BatchCallbacks{}
	}
	for i, cfg := range configs {
		e.runItem(ctx, i, cfg, callbacks)
	}
	if callbacks.OnComplete != nil {
		callbacks.OnComplete()
	}
}

// ExecuteBatchParallel runs conversions with at most maxConcurrent in
// flight. No ordering is guaranteed between different items' callbacks;
// OnComplete fires exactly once after all items have settled, however many
// failed.
func (e *Engine) ExecuteBatchParallel(ctx context.Context, configs []*domain.ConversionConfig, maxConcurrent int, callbacks *domain.BatchCallbacks) {
	if callbacks == nil {
		callbacks = &domain.BatchCallbacks{}
	}
	if maxConcurrent < 1 {
		maxConcurrent = 2
	}

	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup

	for i, cfg := range configs {
		sem <- struct{}{}
		wg.Add(1)
		go func(index int, cfg *domain.ConversionConfig) {
			defer wg.Done()
			defer func() { <-sem }()
			e.runItem(ctx, index, cfg, callbacks)
		}(i, cfg)
	}

	wg.Wait()
	if callbacks.OnComplete != nil {
		callbacks.OnComplete()
	}
}

func (e *Engine) runItem(ctx context.Context, index int, cfg *domain.ConversionConfig, callbacks *domain.BatchCallbacks) {
	err := e.Execute(ctx, cfg, &domain.ConversionCallbacks{
		OnProgress: func(p domain.Progress) {
			if callbacks.OnProgress != nil {
				callbacks.OnProgress(index, p)
			}
		},
	})
	if err != nil {
		if callbacks.OnItemError != nil {
			callbacks.OnItemError(index, err)
		}
		return
	}
	if callbacks.OnItemComplete != nil {
		callbacks.OnItemComplete(index)
	}
}
