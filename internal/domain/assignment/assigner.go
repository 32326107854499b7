package assignment

import (
	"fmt"

	"github.com/cargoplan/cargoplan/internal/domain/shipment"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
)

// Decision is the assigner's pick for one shipment. A nil Decision means no
// feasible voyage exists; the caller decides the fallback (report the skip
// or request an advisory hint) and must never invent an assignment.
type Decision struct {
	VoyageCode string
	Reason     string
	Score      float64
}

// Assigner resolves one shipment against a voyage pool using the
// feasibility checker and the scoring policy. It is pure: committing the
// pick (persist + ledger apply) is the caller's job, which is what makes a
// decision idempotent for an unchanged ledger.
type Assigner struct {
	checker Checker
	mode    Mode
}

// NewAssigner creates an assigner with the given checker and scoring mode
func NewAssigner(checker Checker, mode Mode) *Assigner {
	if !mode.IsValid() {
		mode = ModeSpreadLoad
	}
	return &Assigner{checker: checker, mode: mode}
}

// Checker exposes the assigner's feasibility checker for callers that need
// to re-verify external proposals before committing them.
func (a *Assigner) Checker() Checker {
	return a.checker
}

// Assign filters the voyage pool through the feasibility checker, ranks the
// survivors, and returns the top pick. Returns nil when nothing fits.
func (a *Assigner) Assign(s *shipment.Shipment, voyages []*voyage.Voyage, led Ledger) *Decision {
	feasible := make([]*voyage.Voyage, 0, len(voyages))
	for _, v := range voyages {
		if a.checker.Fits(s, v, led.Entry(v.Code()), DateStrict).OK {
			feasible = append(feasible, v)
		}
	}
	if len(feasible) == 0 {
		return nil
	}

	ranked := Rank(s, feasible, led, a.mode)
	top := ranked[0]
	return &Decision{
		VoyageCode: top.Voyage.Code(),
		Reason: fmt.Sprintf("%s %s->%s departing %s",
			top.Voyage.Code(),
			top.Voyage.Origin(),
			top.Voyage.Destination(),
			top.Voyage.DepartAt().Format("2006-01-02"),
		),
		Score: top.Score,
	}
}

// Verify re-checks an externally proposed shipment-to-voyage pairing with
// the strict rules. Suggestion providers propose; this gate decides.
func (a *Assigner) Verify(s *shipment.Shipment, v *voyage.Voyage, led Ledger) FitResult {
	return a.checker.Fits(s, v, led.Entry(v.Code()), DateStrict)
}
