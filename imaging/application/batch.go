package application

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/RawdodReverend/EXIF-STRIP/imaging/domain"
)

// Orchestrator applies the stripping engine to each item of a batch
// independently. One item's failure never affects another's outcome.
type Orchestrator struct {
	stripper    *Stripper
	parallelism int
}

func NewOrchestrator(stripper *Stripper, parallelism int) *Orchestrator {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Orchestrator{stripper: stripper, parallelism: parallelism}
}

// StripBatch processes every submitted item and returns exactly one outcome
// per item, in submission order. Items whose filename fails the extension
// pre-check are rejected without a decode attempt. Per-item work runs on a
// bounded worker pool; items share no state.
func (o *Orchestrator) StripBatch(ctx context.Context, items []domain.BatchItem, policy domain.StripPolicy) []domain.BatchOutcome {
	outcomes := make([]domain.BatchOutcome, len(items))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)

	for i, item := range items {
		g.Go(func() error {
			outcomes[i] = o.processItem(item, policy)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (o *Orchestrator) processItem(item domain.BatchItem, policy domain.StripPolicy) (outcome domain.BatchOutcome) {
	name := filepath.Base(item.Filename)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "file"
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = domain.FailureOutcome(name, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, r))
		}
	}()

	if !domain.IsImageFilename(name) {
		return domain.FailureOutcome(name, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, name))
	}

	cleaned, warnings, err := o.stripper.Strip(item.Data, name, policy)
	if err != nil {
		return domain.FailureOutcome(name, err)
	}
	return domain.BatchOutcome{Name: name, Data: cleaned, Warnings: warnings}
}
