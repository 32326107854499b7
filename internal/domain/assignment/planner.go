package assignment

import (
	"math"
	"sort"

	"github.com/cargoplan/cargoplan/internal/domain/shipment"
)

// Vessel is a hypothetical carrier for preview planning. It carries only
// capacity; lane and schedule are assumed compatible with the pool the
// caller selected.
type Vessel struct {
	Name        string
	WeightCapT  *float64
	VolumeCapM3 *float64
}

// PlanSkip records one shipment the plan could not fit, with the dimension
// that overflowed first.
type PlanSkip struct {
	ShipmentCode string
	Reason       string // "weight", "volume", or "weight+volume"
}

// Utilization is the used/cap percentage per dimension. Unlimited caps
// report zero rather than dividing by infinity.
type Utilization struct {
	WeightPct int
	VolumePct int
}

// Plan is the result of one non-committing preview run
type Plan struct {
	Assigned    []string
	Skipped     []PlanSkip
	Utilization Utilization
	UsedWeight  float64
	UsedVolume  float64
}

// PlanFFD runs classic First-Fit-Decreasing bin-packing of a shipment pool
// against a single vessel's capacity. Nothing is persisted; the plan is
// advisory and safe to recompute with different vessel hypotheses.
//
// The sort key is the dominant resource dimension: with two finite caps the
// tighter cap (by raw magnitude) dominates; with one finite cap that one
// dominates; with none, weight is used by convention.
func PlanFFD(pool []*shipment.Shipment, vessel Vessel) *Plan {
	capW := math.Inf(1)
	capV := math.Inf(1)
	if vessel.WeightCapT != nil {
		capW = *vessel.WeightCapT
	}
	if vessel.VolumeCapM3 != nil {
		capV = *vessel.VolumeCapM3
	}

	dominantWeight := dominantIsWeight(capW, capV)

	sorted := make([]*shipment.Shipment, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		da, db := dominantValue(a, dominantWeight), dominantValue(b, dominantWeight)
		if da != db {
			return da > db // decreasing
		}
		if a.IsPriority() != b.IsPriority() {
			return a.IsPriority()
		}
		if !a.ShipDate().Equal(b.ShipDate()) {
			return a.ShipDate().Before(b.ShipDate())
		}
		return a.Code() < b.Code()
	})

	plan := &Plan{Assigned: []string{}, Skipped: []PlanSkip{}}
	for _, s := range sorted {
		w := s.ChargeableWeight()
		v := s.ChargeableVolume()
		okW := plan.UsedWeight+w <= capW
		okV := plan.UsedVolume+v <= capV
		if okW && okV {
			plan.Assigned = append(plan.Assigned, s.Code())
			plan.UsedWeight += w
			plan.UsedVolume += v
			continue
		}
		reason := ReasonWeight
		switch {
		case !okW && !okV:
			reason = ReasonWeightVolume
		case !okV:
			reason = ReasonVolume
		}
		plan.Skipped = append(plan.Skipped, PlanSkip{ShipmentCode: s.Code(), Reason: reason})
	}

	plan.Utilization = Utilization{
		WeightPct: utilizationPct(plan.UsedWeight, capW),
		VolumePct: utilizationPct(plan.UsedVolume, capV),
	}
	return plan
}

func dominantIsWeight(capW, capV float64) bool {
	finW := !math.IsInf(capW, 1)
	finV := !math.IsInf(capV, 1)
	switch {
	case finW && finV:
		return capW <= capV
	case finW:
		return true
	case finV:
		return false
	default:
		return true // neither cap declared: weight by convention
	}
}

func dominantValue(s *shipment.Shipment, dominantWeight bool) float64 {
	if dominantWeight {
		return s.ChargeableWeight()
	}
	return s.ChargeableVolume()
}

func utilizationPct(used, capacity float64) int {
	if math.IsInf(capacity, 1) || capacity <= 0 {
		return 0
	}
	return int(math.Round(used / capacity * 100))
}
