package models

// Transition tables for strict mode. The deployed behavior matches the
// original portal: any status may move to any other valid status. When
// STRICT_TRANSITIONS is enabled these tables apply instead; whether arbitrary
// jumps (e.g. resurrecting a closed issue) should stay legal is an open
// product question, so both behaviors are kept configurable.

var issueTransitions = map[IssueStatus][]IssueStatus{
	IssueStatusReported:     {IssueStatusAcknowledged, IssueStatusInProgress, IssueStatusResolved, IssueStatusClosed},
	IssueStatusAcknowledged: {IssueStatusInProgress, IssueStatusResolved, IssueStatusClosed},
	IssueStatusInProgress:   {IssueStatusResolved, IssueStatusClosed},
	IssueStatusResolved:     {IssueStatusClosed},
	IssueStatusClosed:       {},
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusApproved, BookingStatusRejected},
	BookingStatusApproved: {},
	BookingStatusRejected: {},
}

var meterReadingTransitions = map[MeterReadingStatus][]MeterReadingStatus{
	MeterReadingStatusPending:   {MeterReadingStatusScheduled, MeterReadingStatusCompleted, MeterReadingStatusCancelled},
	MeterReadingStatusScheduled: {MeterReadingStatusCompleted, MeterReadingStatusCancelled},
	MeterReadingStatusCompleted: {},
	MeterReadingStatusCancelled: {},
}

// CanTransition reports whether a status change is allowed. With strict mode
// off, any valid target is allowed regardless of the current status.
func (s IssueStatus) CanTransition(to IssueStatus, strict bool) bool {
	if !to.IsValid() {
		return false
	}
	if !strict {
		return true
	}
	for _, allowed := range issueTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s BookingStatus) CanTransition(to BookingStatus, strict bool) bool {
	if !to.IsValid() {
		return false
	}
	if !strict {
		return true
	}
	for _, allowed := range bookingTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s MeterReadingStatus) CanTransition(to MeterReadingStatus, strict bool) bool {
	if !to.IsValid() {
		return false
	}
	if !strict {
		return true
	}
	for _, allowed := range meterReadingTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}
