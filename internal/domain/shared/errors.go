package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Shipment-related errors

type ShipmentError struct {
	*DomainError
	ShipmentCode string
}

func NewShipmentError(message, shipmentCode string) *ShipmentError {
	return &ShipmentError{
		DomainError:  &DomainError{Message: message},
		ShipmentCode: shipmentCode,
	}
}

type ShipmentNotFoundError struct {
	*ShipmentError
}

func NewShipmentNotFoundError(shipmentCode string) *ShipmentNotFoundError {
	return &ShipmentNotFoundError{
		ShipmentError: NewShipmentError(
			fmt.Sprintf("shipment %s not found", shipmentCode),
			shipmentCode,
		),
	}
}

// Voyage-related errors

type VoyageError struct {
	*DomainError
	VoyageCode string
}

func NewVoyageError(message, voyageCode string) *VoyageError {
	return &VoyageError{
		DomainError: &DomainError{Message: message},
		VoyageCode:  voyageCode,
	}
}

type VoyageNotFoundError struct {
	*VoyageError
}

func NewVoyageNotFoundError(voyageCode string) *VoyageNotFoundError {
	return &VoyageNotFoundError{
		VoyageError: NewVoyageError(
			fmt.Sprintf("voyage %s not found", voyageCode),
			voyageCode,
		),
	}
}

// Assignment errors

type AssignmentError struct {
	*DomainError
	ShipmentCode string
	VoyageCode   string
}

func NewAssignmentError(message, shipmentCode, voyageCode string) *AssignmentError {
	return &AssignmentError{
		DomainError:  &DomainError{Message: message},
		ShipmentCode: shipmentCode,
		VoyageCode:   voyageCode,
	}
}

// CapacityOverflowError indicates an assignment would push a voyage's used
// capacity past its declared cap. The deterministic assigner never picks
// such a pairing; only externally proposed pairings (operator moves) can
// trip this.
type CapacityOverflowError struct {
	*AssignmentError
	Dimension string // "weight", "volume", or "weight+volume"
}

func NewCapacityOverflowError(shipmentCode, voyageCode, dimension string) *CapacityOverflowError {
	return &CapacityOverflowError{
		AssignmentError: NewAssignmentError(
			fmt.Sprintf("assigning %s to %s would exceed %s capacity", shipmentCode, voyageCode, dimension),
			shipmentCode,
			voyageCode,
		),
		Dimension: dimension,
	}
}

// AdvisorUnavailableError indicates the text-generation collaborator failed.
// Callers must degrade to a deterministic fallback string, never surface this
// as a user-facing error for an otherwise-successful assignment.
type AdvisorUnavailableError struct {
	*DomainError
	Cause error
}

func NewAdvisorUnavailableError(cause error) *AdvisorUnavailableError {
	return &AdvisorUnavailableError{
		DomainError: &DomainError{Message: fmt.Sprintf("advisor unavailable: %v", cause)},
		Cause:       cause,
	}
}

func (e *AdvisorUnavailableError) Unwrap() error {
	return e.Cause
}
