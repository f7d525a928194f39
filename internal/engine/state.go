package engine

import (
	"fmt"
	"time"
)

// StateKind enumerates the compliance states a document can be in.
type StateKind int

const (
	StateUnknown StateKind = iota
	StateValid
	StateExpiringSoon
	StateExpired
)

func (k StateKind) String() string {
	switch k {
	case StateUnknown:
		return "unknown"
	case StateValid:
		return "valid"
	case StateExpiringSoon:
		return "expiring_soon"
	case StateExpired:
		return "expired"
	}
	return fmt.Sprintf("state(%d)", int(k))
}

// ComplianceState is the derived compliance status of a single document. Days
// carries days-left for ExpiringSoon and days-overdue for Expired; it is zero
// otherwise.
type ComplianceState struct {
	Kind StateKind
	Days int
}

// Classify maps a document expiry date and an owner's lead-time threshold to
// a compliance state. The rules are evaluated in order:
//
//  1. absent expiry date -> Unknown
//  2. d = DaysUntil(expiry, now); d < 0 -> Expired(-d)
//  3. d <= daysBefore -> ExpiringSoon(d), boundary inclusive
//  4. otherwise -> Valid
func Classify(expiry *time.Time, daysBefore int, now time.Time, loc *time.Location) ComplianceState {
	if expiry == nil {
		return ComplianceState{Kind: StateUnknown}
	}

	d := DaysUntil(*expiry, now, loc)
	switch {
	case d < 0:
		return ComplianceState{Kind: StateExpired, Days: -d}
	case d <= daysBefore:
		return ComplianceState{Kind: StateExpiringSoon, Days: d}
	default:
		return ComplianceState{Kind: StateValid}
	}
}

// AlertWorthy reports whether the state warrants a notification.
func (s ComplianceState) AlertWorthy() bool {
	return s.Kind == StateExpiringSoon || s.Kind == StateExpired
}

// Class returns the coarse alert category for alert-worthy states.
func (s ComplianceState) Class() (StateClass, bool) {
	switch s.Kind {
	case StateExpiringSoon:
		return ClassExpiringSoon, true
	case StateExpired:
		return ClassExpired, true
	}
	return "", false
}
