package order

import "github.com/BruksfildServices01/food-storefront/internal/httperr"

// ===============================
// Order Status
// ===============================

type Status string

const (
	StatusPending            Status = "pending"
	StatusConfirmed          Status = "confirmed"
	StatusDelivered          Status = "delivered"
	StatusCompletedConfirmed Status = "completed_confirmed"
	StatusCancelled          Status = "cancelled"

	// staffCompleted is the label staff tools send for a finished order.
	staffCompleted = "completed"
)

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Client Actions
// ===============================

const (
	ActionCancel          = "cancel"
	ActionConfirm         = "confirm"
	ActionConfirmDelivery = "confirm_delivery"
)

// Transition is the status an action writes, split on whether the order
// is currently delivered. Stores apply it in a single conditional update.
type Transition struct {
	FromDelivered Status
	Otherwise     Status
}

func (t Transition) Apply(current Status) Status {
	if current == StatusDelivered {
		return t.FromDelivered
	}
	return t.Otherwise
}

func TransitionFor(action string) (Transition, error) {
	switch action {
	case ActionCancel:
		return Transition{FromDelivered: StatusCancelled, Otherwise: StatusCancelled}, nil
	case ActionConfirm:
		return Transition{FromDelivered: StatusCompletedConfirmed, Otherwise: StatusConfirmed}, nil
	case ActionConfirmDelivery:
		return Transition{FromDelivered: StatusDelivered, Otherwise: StatusDelivered}, nil
	}
	return Transition{}, ErrInvalidAction
}

// ===============================
// Staff / Admin
// ===============================

// StaffStatus normalizes a status chosen from the back office. Any
// non-empty literal is accepted as-is.
func StaffStatus(requested string) (Status, error) {
	switch requested {
	case "":
		return "", ErrStatusRequired
	case staffCompleted:
		return StatusDelivered, nil
	}
	return Status(requested), nil
}

// FilterStatuses maps a list filter to the statuses it matches. A nil
// result means no filtering.
func FilterStatuses(filter string) []Status {
	switch filter {
	case "", "all":
		return nil
	case string(StatusConfirmed):
		return []Status{StatusConfirmed, StatusCompletedConfirmed}
	}
	return []Status{Status(filter)}
}

func StatusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

var (
	ErrInvalidAction  = httperr.NewBusiness("invalid_action", "Invalid action!")
	ErrStatusRequired = httperr.NewBusiness("status_required", "Status is required!")
)
