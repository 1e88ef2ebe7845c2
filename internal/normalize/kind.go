package normalize

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Kind names an entity kind the console works with. The value doubles as the
// upstream collection path segment.
type Kind string

const (
	KindApplications  Kind = "applications"
	KindBuildings     Kind = "buildings"
	KindRooms         Kind = "rooms"
	KindStudents      Kind = "students"
	KindPayments      Kind = "payments"
	KindComplaints    Kind = "complaints"
	KindNotifications Kind = "notifications"
)

// Kinds lists every entity kind, in sidebar order.
var Kinds = []Kind{
	KindApplications,
	KindBuildings,
	KindRooms,
	KindStudents,
	KindPayments,
	KindComplaints,
	KindNotifications,
}

// Valid reports whether k names a known entity kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Record normalizes one raw element of kind k into its canonical record.
func Record(k Kind, doc gjson.Result) (any, error) {
	switch k {
	case KindApplications:
		return ApplicationRecord(doc), nil
	case KindBuildings:
		return BuildingRecord(doc), nil
	case KindRooms:
		return RoomRecord(doc), nil
	case KindStudents:
		return StudentRecord(doc), nil
	case KindPayments:
		return PaymentRecord(doc), nil
	case KindComplaints:
		return ComplaintRecord(doc), nil
	case KindNotifications:
		return NotificationRecord(doc), nil
	}
	return nil, fmt.Errorf("unknown entity kind %q", k)
}

// Records unwraps a raw list response and normalizes every element. The
// result is never nil.
func Records(k Kind, raw []byte) ([]any, error) {
	elements := UnwrapList(raw)
	records := make([]any, 0, len(elements))
	for _, element := range elements {
		record, err := Record(k, element)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
