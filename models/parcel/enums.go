package parcel

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusReceived  Status = "received"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusLost      Status = "lost"
	StatusReturned  Status = "returned"
)

var statusLabels = map[Status]string{
	StatusPending:   "Pending",
	StatusReceived:  "Received",
	StatusInTransit: "In Transit",
	StatusDelivered: "Delivered",
	StatusLost:      "Lost",
	StatusReturned:  "Returned",
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the human readable form shown as status_display.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// GetAllStatuses returns every valid parcel status in lifecycle order.
func GetAllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusReceived,
		StatusInTransit,
		StatusDelivered,
		StatusLost,
		StatusReturned,
	}
}

// ParseStatus converts raw input into a Status, rejecting anything outside
// the fixed set.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid parcel status %q", raw)
	}
	return s, nil
}

type Type string

const (
	TypeParcel   Type = "parcel"
	TypeLetter   Type = "letter"
	TypePackage  Type = "package"
	TypeDocument Type = "document"
)

var typeLabels = map[Type]string{
	TypeParcel:   "Parcel",
	TypeLetter:   "Letter",
	TypePackage:  "Package",
	TypeDocument: "Document",
}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	_, ok := typeLabels[t]
	return ok
}

func (t Type) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

func ParseType(raw string) (Type, error) {
	t := Type(raw)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid parcel type %q", raw)
	}
	return t, nil
}

// Role is the part a user plays in a parcel's delivery.
type Role string

const (
	RoleSender   Role = "sender"
	RoleReceiver Role = "receiver"
)

func (r Role) IsValid() bool {
	return r == RoleSender || r == RoleReceiver
}

type RouteStatus string

const (
	RouteStatusPending    RouteStatus = "pending"
	RouteStatusInProgress RouteStatus = "in_progress"
	RouteStatusCompleted  RouteStatus = "completed"
)

func (rs RouteStatus) IsValid() bool {
	switch rs {
	case RouteStatusPending, RouteStatusInProgress, RouteStatusCompleted:
		return true
	default:
		return false
	}
}
