package assign_test

import (
	"context"
	"time"

	"github.com/cargoplan/cargoplan/internal/application/assign"
	"github.com/cargoplan/cargoplan/internal/domain/assignment"
	"github.com/cargoplan/cargoplan/internal/domain/shipment"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
)

func f64(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func mkShipment(code string, priority bool, weight, volume *float64) *shipment.Shipment {
	return shipment.Reconstruct(code, shipment.StatusCreated, priority,
		"Mumbai", "Chennai", day("2025-08-09"), 5, weight, volume)
}

func mkVoyage(code, departAt, arriveBy string, weightCap, volumeCap *float64) *voyage.Voyage {
	return voyage.Reconstruct(code, "MV Test", "Mumbai", "Chennai",
		day(departAt), day(arriveBy), weightCap, volumeCap)
}

// In-memory fakes for the persistence and collaborator ports.

type fakeShipments struct {
	pool []*shipment.Shipment
}

func (f *fakeShipments) Save(ctx context.Context, s *shipment.Shipment) error { return nil }

func (f *fakeShipments) FindByCode(ctx context.Context, code string) (*shipment.Shipment, error) {
	for _, s := range f.pool {
		if s.Code() == code {
			return s, nil
		}
	}
	return nil, errNotFound(code)
}

func (f *fakeShipments) List(ctx context.Context, limit int) ([]*shipment.Shipment, error) {
	return f.pool, nil
}

func (f *fakeShipments) ListUnassigned(ctx context.Context, statuses []shipment.Status, limit int) ([]*shipment.Shipment, error) {
	return f.pool, nil
}

func (f *fakeShipments) Delete(ctx context.Context, code string) error { return nil }

func (f *fakeShipments) RecordEvent(ctx context.Context, code string, event *shipment.TrackingEvent) error {
	return nil
}

func (f *fakeShipments) ListEvents(ctx context.Context, code string) ([]*shipment.TrackingEvent, error) {
	return nil, nil
}

type notFoundError string

func (e notFoundError) Error() string { return string(e) + " not found" }

func errNotFound(code string) error { return notFoundError(code) }

type fakeVoyages struct {
	pool []*voyage.Voyage
}

func (f *fakeVoyages) Save(ctx context.Context, v *voyage.Voyage) error { return nil }

func (f *fakeVoyages) FindByCode(ctx context.Context, code string) (*voyage.Voyage, error) {
	for _, v := range f.pool {
		if v.Code() == code {
			return v, nil
		}
	}
	return nil, errNotFound(code)
}

func (f *fakeVoyages) List(ctx context.Context, limit int) ([]*voyage.Voyage, error) {
	return f.pool, nil
}

func (f *fakeVoyages) Delete(ctx context.Context, code string) error { return nil }

// fakeAssignments keeps active assignments in a map and derives loads from
// the shipments it is given, like the real repository's aggregation query.
type fakeAssignments struct {
	active    map[string]string // shipment code -> voyage code
	shipments map[string]*shipment.Shipment
	moveErr   map[string]error // per shipment code
	moved     []string
}

func newFakeAssignments(pool ...*shipment.Shipment) *fakeAssignments {
	shipments := map[string]*shipment.Shipment{}
	for _, s := range pool {
		shipments[s.Code()] = s
	}
	return &fakeAssignments{
		active:    map[string]string{},
		shipments: shipments,
		moveErr:   map[string]error{},
	}
}

func (f *fakeAssignments) Move(ctx context.Context, shipmentCode, voyageCode string) error {
	if err := f.moveErr[shipmentCode]; err != nil {
		return err
	}
	f.active[shipmentCode] = voyageCode
	f.moved = append(f.moved, shipmentCode)
	return nil
}

func (f *fakeAssignments) Delete(ctx context.Context, voyageCode, shipmentCode string) error {
	delete(f.active, shipmentCode)
	return nil
}

func (f *fakeAssignments) ListForVoyage(ctx context.Context, voyageCode string) ([]*assignment.Assignment, error) {
	return nil, nil
}

func (f *fakeAssignments) ActiveVoyageCode(ctx context.Context, shipmentCode string) (string, bool, error) {
	code, ok := f.active[shipmentCode]
	return code, ok, nil
}

func (f *fakeAssignments) ListLoads(ctx context.Context) ([]assignment.Load, error) {
	loads := []assignment.Load{}
	for shipmentCode, voyageCode := range f.active {
		s, ok := f.shipments[shipmentCode]
		if !ok {
			continue
		}
		loads = append(loads, assignment.Load{
			VoyageCode: voyageCode,
			WeightTons: s.ChargeableWeight(),
			VolumeM3:   s.ChargeableVolume(),
		})
	}
	return loads, nil
}

type fakeAdvisor struct {
	proposeFn   func(s assign.ShipmentContext, candidates []assign.CandidateVoyage) (*assign.Proposal, error)
	narrativeFn func(plan assign.PlanSummary) (string, error)
	hintFn      func(hint assign.HintContext) (string, error)
}

func (f *fakeAdvisor) ProposeVoyage(ctx context.Context, s assign.ShipmentContext, candidates []assign.CandidateVoyage) (*assign.Proposal, error) {
	if f.proposeFn == nil {
		return nil, nil
	}
	return f.proposeFn(s, candidates)
}

func (f *fakeAdvisor) PlanNarrative(ctx context.Context, plan assign.PlanSummary) (string, error) {
	if f.narrativeFn == nil {
		return "", errNotFound("narrative")
	}
	return f.narrativeFn(plan)
}

func (f *fakeAdvisor) RouteHint(ctx context.Context, hint assign.HintContext) (string, error) {
	if f.hintFn == nil {
		return "", errNotFound("hint")
	}
	return f.hintFn(hint)
}

// fakeLogger records debug messages so tests can assert on them
type fakeLogger struct {
	debugs []string
}

func (f *fakeLogger) Debug(msg string, fields map[string]interface{}) {
	f.debugs = append(f.debugs, msg)
}
func (f *fakeLogger) Info(msg string, fields map[string]interface{})  {}
func (f *fakeLogger) Warn(msg string, fields map[string]interface{})  {}
func (f *fakeLogger) Error(msg string, fields map[string]interface{}) {}

type publishedEvent struct {
	key   string
	value interface{}
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, key string, value interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, publishedEvent{key: key, value: value})
	return nil
}

type fakeRecorder struct {
	batchRuns        int
	lastAssigned     int
	lastProcessed    int
	skips            map[string]int
	advisorFallbacks int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{skips: map[string]int{}}
}

func (f *fakeRecorder) RecordBatchRun(assigned, processed int) {
	f.batchRuns++
	f.lastAssigned = assigned
	f.lastProcessed = processed
}

func (f *fakeRecorder) RecordSkip(reason string) { f.skips[reason]++ }
func (f *fakeRecorder) RecordAdvisorFallback()   { f.advisorFallbacks++ }

func newAssigner() *assignment.Assigner {
	return assignment.NewAssigner(assignment.NewChecker(time.Hour), assignment.ModeSpreadLoad)
}
