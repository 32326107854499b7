package assignment

import (
	"strings"
	"time"

	"github.com/cargoplan/cargoplan/internal/domain/shipment"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
)

// DateMode controls how the checker treats missing or unparseable dates.
//
// The committing path fails closed: a shipment or voyage with a broken
// timestamp does not fit, because a wrong assignment moves real cargo.
// Advisory-only paths fail open: a broken timestamp is ignored so a hint can
// still be produced. The asymmetry is deliberate and must not be collapsed;
// the two call sites carry very different risk.
type DateMode int

const (
	// DateStrict treats malformed dates as "does not fit"
	DateStrict DateMode = iota
	// DateAdvisory treats malformed dates as "fits" (hint generation only)
	DateAdvisory
)

// Skip reason tags, shared by the checker, planner, and batch results
const (
	ReasonLane          = "lane"
	ReasonWindow        = "window"
	ReasonWeight        = "weight"
	ReasonVolume        = "volume"
	ReasonWeightVolume  = "weight+volume"
	ReasonMalformedDate = "malformed-date"
)

// FitResult is the outcome of a single feasibility check
type FitResult struct {
	OK     bool
	Reason string // one of the Reason* tags when OK is false, empty otherwise
}

func fit() FitResult                { return FitResult{OK: true} }
func unfit(reason string) FitResult { return FitResult{Reason: reason} }

// Checker is the pure lane/time/capacity predicate. It holds only
// configuration and has no side effects, so a decision is reproducible for
// an unchanged ledger.
type Checker struct {
	// DepartSlack absorbs clock and timezone noise: a voyage may depart up
	// to this long before the shipment's ship date and still fit.
	DepartSlack time.Duration
}

// NewChecker creates a feasibility checker with the given departure slack
func NewChecker(departSlack time.Duration) Checker {
	return Checker{DepartSlack: departSlack}
}

// Fits reports whether shipment s can ride voyage v given the voyage's
// current ledger entry. All three checks must pass: lane equality, temporal
// window, and remaining capacity.
func (c Checker) Fits(s *shipment.Shipment, v *voyage.Voyage, entry *Entry, mode DateMode) FitResult {
	if !LaneMatches(s.Origin(), s.Destination(), v.Origin(), v.Destination()) {
		return unfit(ReasonLane)
	}

	if r := c.timeFit(s, v, mode); !r.OK {
		return r
	}

	return capacityFit(s, entry)
}

// TimeFits checks only the temporal window, without the lane and capacity
// rules. Advisory candidate filtering uses it with DateAdvisory: lane
// equality is deliberately relaxed there, but a voyage whose window can
// never work is still noise in a hint prompt.
func (c Checker) TimeFits(s *shipment.Shipment, v *voyage.Voyage, mode DateMode) FitResult {
	return c.timeFit(s, v, mode)
}

// timeFit checks the temporal window: the voyage must depart on or after the
// ship date (minus slack) and must not arrive before the shipment's own ETA.
func (c Checker) timeFit(s *shipment.Shipment, v *voyage.Voyage, mode DateMode) FitResult {
	if s.ShipDate().IsZero() || v.DepartAt().IsZero() || v.ArriveBy().IsZero() {
		if mode == DateAdvisory {
			return fit()
		}
		return unfit(ReasonMalformedDate)
	}

	if v.DepartAt().Before(s.ShipDate().Add(-c.DepartSlack)) {
		return unfit(ReasonWindow)
	}
	if v.ArriveBy().Before(s.EstimatedDelivery()) {
		return unfit(ReasonWindow)
	}
	return fit()
}

// capacityFit checks remaining weight and volume. Undeclared caps are +Inf
// in the ledger entry and missing shipment values charge zero, so both
// permissive defaults fall out of the plain comparisons.
func capacityFit(s *shipment.Shipment, entry *Entry) FitResult {
	if entry == nil {
		return fit() // voyage outside this run's pool carries no capacity state
	}
	okW := entry.RemainingWeight() >= s.ChargeableWeight()
	okV := entry.RemainingVolume() >= s.ChargeableVolume()
	switch {
	case okW && okV:
		return fit()
	case !okW && !okV:
		return unfit(ReasonWeightVolume)
	case !okW:
		return unfit(ReasonWeight)
	default:
		return unfit(ReasonVolume)
	}
}

// LaneMatches reports strict lane equality: origin equals origin and
// destination equals destination, case-insensitive and whitespace-trimmed.
// This is the canonical rule for anything that can commit.
func LaneMatches(sOrigin, sDest, vOrigin, vDest string) bool {
	return equalCity(sOrigin, vOrigin) && equalCity(sDest, vDest)
}

// LaneNear is the degraded prefix-match used only to pre-filter candidates
// for advisory hint generation. It must never gate a commit.
func LaneNear(sOrigin, sDest, vOrigin, vDest string) bool {
	return nearCity(sOrigin, vOrigin) || nearCity(sDest, vDest)
}

func equalCity(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func nearCity(a, b string) bool {
	na := strings.ToLower(strings.TrimSpace(a))
	nb := strings.ToLower(strings.TrimSpace(b))
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.HasPrefix(na, nb) || strings.HasPrefix(nb, na)
}
