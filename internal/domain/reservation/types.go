package reservation

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsActive reports whether a reservation in this status occupies its room.
// Cancelled and no-show reservations release the dates.
func (s Status) IsActive() bool {
	return s != StatusCancelled && s != StatusNoShow
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusNoShow, StatusCheckedOut:
		return true
	default:
		return false
	}
}
