package engine

import "fmt"

// NotificationTitle renders the short alert headline, e.g.
// "Insurance expiring in 5 days" or "Road tax expired 3 days ago".
func NotificationTitle(doc DocumentType, state ComplianceState) string {
	label := doc.Label()
	switch state.Kind {
	case StateExpiringSoon:
		if state.Days == 0 {
			return fmt.Sprintf("%s expiring today", label)
		}
		return fmt.Sprintf("%s expiring in %s", label, pluralDays(state.Days))
	case StateExpired:
		return fmt.Sprintf("%s expired %s ago", label, pluralDays(state.Days))
	}
	return label
}

// NotificationMessage renders the longer body including the vehicle
// registration number.
func NotificationMessage(registration string, doc DocumentType, state ComplianceState) string {
	label := doc.Label()
	switch state.Kind {
	case StateExpiringSoon:
		if state.Days == 0 {
			return fmt.Sprintf("Vehicle %s: %s expires today. Renew immediately to stay compliant.", registration, label)
		}
		return fmt.Sprintf("Vehicle %s: %s expires in %s. Renew before the due date to stay compliant.", registration, label, pluralDays(state.Days))
	case StateExpired:
		return fmt.Sprintf("Vehicle %s: %s expired %s ago. Renew now to avoid penalties.", registration, label, pluralDays(state.Days))
	}
	return fmt.Sprintf("Vehicle %s: %s status update.", registration, label)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
