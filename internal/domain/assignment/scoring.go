package assignment

import (
	"math"
	"sort"

	"github.com/cargoplan/cargoplan/internal/domain/shipment"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
)

// Mode names a ranking objective. The same tie-break chain (departure, then
// load count) applies to every mode; they differ in how leftover slack is
// valued once the chain is exhausted.
type Mode string

const (
	// ModeSpreadLoad prefers voyages that stay comfortably under capacity
	// after the assignment, spreading cargo across the schedule and
	// reducing cascade risk. Default for single-shipment assignment.
	ModeSpreadLoad Mode = "spread-load"

	// ModeTightPack prefers the smallest leftover slack, packing voyages
	// tightly. Used by decreasing-size batch planning.
	ModeTightPack Mode = "tight-pack"

	// ModePriorityWeighted ranks by a numeric score in which a priority
	// flag dominates every other term. Used when scores need to be
	// surfaced to callers.
	ModePriorityWeighted Mode = "priority-weighted"
)

// priorityBonus is large enough that no combination of the other score
// terms can outweigh a priority flag.
const priorityBonus = 1000.0

// IsValid reports whether the mode is one of the named strategies
func (m Mode) IsValid() bool {
	switch m {
	case ModeSpreadLoad, ModeTightPack, ModePriorityWeighted:
		return true
	}
	return false
}

// Candidate pairs a feasible voyage with its ledger entry and ranking score
type Candidate struct {
	Voyage *voyage.Voyage
	Entry  *Entry
	Score  float64
}

// Rank orders feasible voyages for a shipment, best first. The input slice
// is not modified. Rank assumes every voyage already passed the feasibility
// checker; it only decides preference among survivors.
func Rank(s *shipment.Shipment, feasible []*voyage.Voyage, led Ledger, mode Mode) []Candidate {
	cands := make([]Candidate, 0, len(feasible))
	for _, v := range feasible {
		cands = append(cands, Candidate{
			Voyage: v,
			Entry:  led.Entry(v.Code()),
			Score:  score(s, v, led.Entry(v.Code())),
		})
	}

	if mode == ModePriorityWeighted {
		sort.SliceStable(cands, func(i, j int) bool {
			if cands[i].Score != cands[j].Score {
				return cands[i].Score > cands[j].Score
			}
			return cands[i].Voyage.DepartAt().Before(cands[j].Voyage.DepartAt())
		})
		return cands
	}

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]

		// Earlier departure gets the shipment moving sooner.
		if !a.Voyage.DepartAt().Equal(b.Voyage.DepartAt()) {
			return a.Voyage.DepartAt().Before(b.Voyage.DepartAt())
		}

		// Fewer existing assignments spreads load across voyages.
		ca, cb := entryCount(a.Entry), entryCount(b.Entry)
		if ca != cb {
			return ca < cb
		}

		sa := combinedSlackAfter(s, a.Entry)
		sb := combinedSlackAfter(s, b.Entry)
		if mode == ModeTightPack {
			return sa < sb
		}
		return sa > sb
	})
	return cands
}

// score computes the priority-weighted numeric score for one candidate.
// Terms: priority bonus, then the worse of the two post-assignment slack
// ratios (a voyage only scores well if it has headroom on both dimensions).
func score(s *shipment.Shipment, v *voyage.Voyage, entry *Entry) float64 {
	total := 0.0
	if s.IsPriority() {
		total += priorityBonus
	}
	if entry == nil {
		return total
	}

	ratioW := slackRatio(entry.RemainingWeight()-s.ChargeableWeight(), entry.CapWeight)
	ratioV := slackRatio(entry.RemainingVolume()-s.ChargeableVolume(), entry.CapVolume)
	total += math.Max(0, math.Min(ratioW, ratioV))
	return total
}

// slackRatio normalizes leftover slack by the cap; unlimited dimensions
// contribute full headroom.
func slackRatio(slack, capacity float64) float64 {
	if math.IsInf(capacity, 1) {
		return 1
	}
	if capacity <= 0 {
		return 0
	}
	return slack / capacity
}

// combinedSlackAfter is the summed leftover weight and volume slack if the
// shipment were assigned. Unlimited dimensions contribute nothing so that
// finite slack stays comparable between voyages.
func combinedSlackAfter(s *shipment.Shipment, entry *Entry) float64 {
	if entry == nil {
		return 0
	}
	total := 0.0
	if !math.IsInf(entry.CapWeight, 1) {
		total += entry.RemainingWeight() - s.ChargeableWeight()
	}
	if !math.IsInf(entry.CapVolume, 1) {
		total += entry.RemainingVolume() - s.ChargeableVolume()
	}
	return total
}

func entryCount(e *Entry) int {
	if e == nil {
		return 0
	}
	return e.Count
}
