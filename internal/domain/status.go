package domain

const (
	gatewayOrderApproved    = "APPROVED"
	gatewayCaptureCompleted = "COMPLETED"
)

// MapOrderStatus maps an order-level gateway status. Every state other than
// APPROVED, including pending ones, is reported as cancelled.
func MapOrderStatus(status string) StatusKind {
	if status == gatewayOrderApproved {
		return StatusAuthorized
	}
	return StatusCancelled
}

// MapCaptureStatus maps a capture-level gateway status.
func MapCaptureStatus(status string) StatusKind {
	if status == gatewayCaptureCompleted {
		return StatusCleared
	}
	return StatusCancelled
}
