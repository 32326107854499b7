package assignment

import (
	"math"

	"github.com/cargoplan/cargoplan/internal/domain/shipment"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
)

// Load is one committed assignment's contribution to a voyage, as read back
// from persistence when a planning run starts.
type Load struct {
	VoyageCode string
	WeightTons float64
	VolumeM3   float64
}

// Entry tracks one voyage's capacity consumption within a planning run.
// Caps are +Inf for undeclared dimensions, so the capacity comparisons in
// the feasibility checker need no special cases.
type Entry struct {
	UsedWeight float64
	UsedVolume float64
	CapWeight  float64
	CapVolume  float64
	Count      int
}

// RemainingWeight returns cap minus used, clamped at zero for finite caps.
// The clamp is a last-resort defense; the feasibility gate is what actually
// prevents overcommit.
func (e *Entry) RemainingWeight() float64 {
	if math.IsInf(e.CapWeight, 1) {
		return math.Inf(1)
	}
	return math.Max(0, e.CapWeight-e.UsedWeight)
}

// RemainingVolume returns cap minus used, clamped at zero for finite caps
func (e *Entry) RemainingVolume() float64 {
	if math.IsInf(e.CapVolume, 1) {
		return math.Inf(1)
	}
	return math.Max(0, e.CapVolume-e.UsedVolume)
}

// Ledger is the in-memory derived view of per-voyage remaining capacity for
// one planning run, keyed by voyage code. It is rebuilt from persisted
// assignments at the start of every run and discarded at the end; it is
// never a source of truth.
type Ledger map[string]*Entry

// BuildLedger constructs the ledger for a run from the voyage pool and the
// currently committed assignments.
func BuildLedger(voyages []*voyage.Voyage, loads []Load) Ledger {
	led := make(Ledger, len(voyages))
	for _, v := range voyages {
		entry := &Entry{
			CapWeight: math.Inf(1),
			CapVolume: math.Inf(1),
		}
		if v.HasWeightCap() {
			entry.CapWeight = *v.WeightCapT()
		}
		if v.HasVolumeCap() {
			entry.CapVolume = *v.VolumeCapM3()
		}
		led[v.Code()] = entry
	}
	for _, l := range loads {
		entry, ok := led[l.VoyageCode]
		if !ok {
			continue
		}
		entry.UsedWeight += l.WeightTons
		entry.UsedVolume += l.VolumeM3
		entry.Count++
	}
	return led
}

// Entry returns the ledger entry for a voyage code, or nil when the voyage
// was not part of this run's pool.
func (l Ledger) Entry(voyageCode string) *Entry {
	return l[voyageCode]
}

// Apply charges a shipment against the chosen voyage after its assignment
// committed. Only the chosen entry is touched; the rest of the ledger keeps
// its values from the start of the run.
func (l Ledger) Apply(voyageCode string, s *shipment.Shipment) {
	entry, ok := l[voyageCode]
	if !ok {
		return
	}
	entry.UsedWeight += s.ChargeableWeight()
	entry.UsedVolume += s.ChargeableVolume()
	entry.Count++
}

// Release reverses a shipment's charge, used when an unassignment commits
// within the same run.
func (l Ledger) Release(voyageCode string, s *shipment.Shipment) {
	entry, ok := l[voyageCode]
	if !ok {
		return
	}
	entry.UsedWeight = math.Max(0, entry.UsedWeight-s.ChargeableWeight())
	entry.UsedVolume = math.Max(0, entry.UsedVolume-s.ChargeableVolume())
	if entry.Count > 0 {
		entry.Count--
	}
}
