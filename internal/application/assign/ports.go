package assign

import (
	"context"
	"time"
)

// Proposal is an externally suggested shipment-to-voyage pairing. Proposals
// are never trusted: every proposal goes back through the feasibility
// checker before anything commits (propose-then-verify).
type Proposal struct {
	VoyageCode string
	Why        string
}

// CandidateVoyage is the compact voyage view handed to the advisor
type CandidateVoyage struct {
	Code            string    `json:"voyageCode"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	DepartAt        time.Time `json:"departAt"`
	ArriveBy        time.Time `json:"arriveBy"`
	RemainingWeight float64   `json:"remW"`
	RemainingVolume float64   `json:"remV"`
	AssignedCount   int       `json:"assignedCount"`
}

// ShipmentContext is the compact shipment view handed to the advisor
type ShipmentContext struct {
	Code        string    `json:"shipmentCode"`
	IsPriority  bool      `json:"isPriority"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	ShipDate    time.Time `json:"shipDate"`
	TransitDays int       `json:"transitDays"`
	WeightTons  float64   `json:"weightTons"`
	VolumeM3    float64   `json:"volumeM3"`
}

// PlanSummary is the structured context for a plan narrative
type PlanSummary struct {
	VesselName  string
	WeightCapT  *float64
	VolumeCapM3 *float64
	Assigned    []string
	Skipped     map[string]string // shipment code -> reason
	WeightPct   int
	VolumePct   int
}

// HintContext is the structured context for a multi-leg routing hint,
// produced when no direct voyage is feasible.
type HintContext struct {
	Shipment   ShipmentContext
	Candidates []CandidateVoyage // near-lane candidates, advisory filtering
}

// Advisor is the text-generation collaborator port. Every method may fail
// (timeout, quota); callers must degrade to a deterministic fallback and
// never let an advisor failure mask a successful deterministic result.
type Advisor interface {
	// ProposeVoyage asks for a shipment-to-voyage suggestion. A nil
	// proposal with nil error means the advisor sees no feasible voyage.
	ProposeVoyage(ctx context.Context, s ShipmentContext, candidates []CandidateVoyage) (*Proposal, error)

	// PlanNarrative produces a short prose summary of a load plan
	PlanNarrative(ctx context.Context, plan PlanSummary) (string, error)

	// RouteHint proposes non-binding multi-leg routing ideas for a
	// shipment with no feasible direct lane
	RouteHint(ctx context.Context, hint HintContext) (string, error)
}

// Publisher is the event-publishing port for committed assignment changes
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
}

// RunRecorder is the metrics port for batch runs
type RunRecorder interface {
	RecordBatchRun(assigned, processed int)
	RecordSkip(reason string)
	RecordAdvisorFallback()
}

// NoOpRecorder is the default RunRecorder when metrics are not wired
type NoOpRecorder struct{}

func (NoOpRecorder) RecordBatchRun(assigned, processed int) {}
func (NoOpRecorder) RecordSkip(reason string)               {}
func (NoOpRecorder) RecordAdvisorFallback()                 {}
