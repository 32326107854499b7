package assignment_test

import (
	"time"

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

type shipmentSpec struct {
	code        string
	origin      string
	destination string
	shipDate    string
	transitDays int
	priority    bool
	weight      *float64
	volume      *float64
}

func mkShipment(spec shipmentSpec) *shipment.Shipment {
	shipDate := time.Time{}
	if spec.shipDate != "" {
		shipDate = day(spec.shipDate)
	}
	return shipment.Reconstruct(
		spec.code,
		shipment.StatusCreated,
		spec.priority,
		spec.origin,
		spec.destination,
		shipDate,
		spec.transitDays,
		spec.weight,
		spec.volume,
	)
}

// mkShipmentAt builds a Mumbai->Chennai shipment with an exact timestamp,
// for slack tests that need sub-day precision.
func mkShipmentAt(code string, shipDate time.Time, transitDays int) *shipment.Shipment {
	return shipment.Reconstruct(
		code,
		shipment.StatusCreated,
		false,
		"Mumbai",
		"Chennai",
		shipDate,
		transitDays,
		nil,
		nil,
	)
}

type voyageSpec struct {
	code        string
	origin      string
	destination string
	departAt    string
	arriveBy    string
	weightCap   *float64
	volumeCap   *float64
}

func mkVoyage(spec voyageSpec) *voyage.Voyage {
	departAt := time.Time{}
	arriveBy := time.Time{}
	if spec.departAt != "" {
		departAt = day(spec.departAt)
	}
	if spec.arriveBy != "" {
		arriveBy = day(spec.arriveBy)
	}
	return voyage.Reconstruct(
		spec.code,
		"MV Test",
		spec.origin,
		spec.destination,
		departAt,
		arriveBy,
		spec.weightCap,
		spec.volumeCap,
	)
}

// mumbaiChennaiV1 is the reference voyage used across scenarios:
// Mumbai->Chennai, departs 2025-08-10, arrives by 2025-08-15, caps 20t/40m3.
func mumbaiChennaiV1() *voyage.Voyage {
	return mkVoyage(voyageSpec{
		code:        "VOY-001",
		origin:      "Mumbai",
		destination: "Chennai",
		departAt:    "2025-08-10",
		arriveBy:    "2025-08-15",
		weightCap:   f64(20),
		volumeCap:   f64(40),
	})
}
