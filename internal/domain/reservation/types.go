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

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCheckedOut, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// Blocks reports whether a reservation in this status holds the room
// exclusively and participates in the overlap invariant.
func (s Status) Blocks() bool {
	return s == StatusConfirmed || s == StatusCheckedIn
}

var legalTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn:  {StatusCheckedOut, StatusCancelled},
	StatusCheckedOut: {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Source string

const (
	SourceOnline      Source = "online"
	SourcePhone       Source = "phone"
	SourceWalkIn      Source = "walk_in"
	SourceTravelAgent Source = "travel_agent"
)

func (s Source) String() string {
	return string(s)
}

func (s Source) IsValid() bool {
	switch s {
	case SourceOnline, SourcePhone, SourceWalkIn, SourceTravelAgent:
		return true
	default:
		return false
	}
}
