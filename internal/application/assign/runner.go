package assign

import (
	"context"
	"sync"
)

// Runner serializes every committing assignment operation behind one mutex.
// HTTP handlers, CLI commands, and the cron trigger all go through the same
// Runner instance, so two concurrent batch runs (or a batch run racing a
// single assign) cannot both admit shipments against the same stale ledger.
// Read-only operations (plan preview, listings) do not take the lock.
type Runner struct {
	mu       sync.Mutex
	auto     *AutoAssignHandler
	single   *AssignShipmentHandler
	suggest  *SuggestHandler
	planning *PlanPreviewHandler
}

func NewRunner(
	auto *AutoAssignHandler,
	single *AssignShipmentHandler,
	suggest *SuggestHandler,
	planning *PlanPreviewHandler,
) *Runner {
	return &Runner{auto: auto, single: single, suggest: suggest, planning: planning}
}

// AutoAssign runs one committing batch pass under the writer lock
func (r *Runner) AutoAssign(ctx context.Context) (*BatchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.auto.Execute(ctx)
}

// AssignShipment commits the best voyage for one shipment under the writer lock
func (r *Runner) AssignShipment(ctx context.Context, shipmentCode string) (*AssignResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.single.Execute(ctx, shipmentCode)
}

// MoveShipment commits an operator-chosen voyage under the writer lock
func (r *Runner) MoveShipment(ctx context.Context, shipmentCode, voyageCode string) (*AssignResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.single.MoveTo(ctx, shipmentCode, voyageCode)
}

// Unassign removes one assignment under the writer lock
func (r *Runner) Unassign(ctx context.Context, voyageCode, shipmentCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.single.Unassign(ctx, voyageCode, shipmentCode)
}

// Suggest runs advisor-guided assignment under the writer lock; it can commit
func (r *Runner) Suggest(ctx context.Context, shipmentCode string) (*SuggestResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.suggest.Execute(ctx, shipmentCode)
}

// PlanPreview computes a non-committing load plan; no lock needed
func (r *Runner) PlanPreview(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	return r.planning.Execute(ctx, req)
}
