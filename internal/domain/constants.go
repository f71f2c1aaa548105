package domain

const (
	RoleTenant          = "tenant"
	RoleLandlord        = "landlord"
	RoleAdmin           = "admin"
	RoleServiceProvider = "service"
	RoleSupportAgent    = "agent"
)

// Booking lifecycle. Legal transitions are enforced in service.BookingService;
// Rejected and MoveOutRequested are terminal.
const (
	BookingPending          = "Pending"
	BookingApproved         = "Approved"
	BookingRejected         = "Rejected"
	BookingActive           = "Active"
	BookingMoveOutRequested = "MoveOutRequested"
	BookingCancelled        = "Cancelled"
)

// PaymentTransaction status. Immutable once Success or Failed.
const (
	PaymentPending = "Pending"
	PaymentSuccess = "Success"
	PaymentFailed  = "Failed"
)

// Booking.PaymentStatus (rent), distinct from transaction status.
const (
	RentPending = "Pending"
	RentPaid    = "Paid"
	RentFailed  = "Failed"
)

const (
	PurposeDeposit = "DEPOSIT"
	PurposeRent    = "RENT"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

const (
	MaintenanceOpen       = "Open"
	MaintenanceInProgress = "In Progress"
	MaintenanceResolved   = "Resolved"
)

const (
	ServiceRequestPending   = "Pending"
	ServiceRequestAccepted  = "Accepted"
	ServiceRequestCompleted = "Completed"
)

const (
	TicketOpen      = "open"
	TicketResolved  = "resolved"
	TicketEscalated = "escalated"
)
