package delivery

// transitionTable is the fixed directed graph of legal status transitions.
// The key is the current status, the value the set of statuses reachable
// from it. Terminal statuses map to an empty set.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:        {StatusAssigned, StatusCancelled},
		StatusAssigned:       {StatusPickedUp, StatusCancelled},
		StatusPickedUp:       {StatusInTransit, StatusFailed},
		StatusInTransit:      {StatusOutForDelivery, StatusFailed},
		StatusOutForDelivery: {StatusDelivered, StatusFailed},
		StatusFailed:         {StatusAssigned, StatusCancelled},
		StatusDelivered:      {},
		StatusCancelled:      {},
	}
}

func nextStatuses(from Status) []Status {
	return transitionTable()[from]
}

// IsTransitionAllowed reports whether a transition from one status to another
// is present in the transition table. Pure function, no side effects.
func IsTransitionAllowed(from, to Status) bool {
	for _, s := range nextStatuses(from) {
		if s == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the set of statuses legally reachable from the given
// status. Terminal statuses yield an empty set.
func NextStatuses(from Status) []Status {
	allowed := nextStatuses(from)
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// NextStatusNames returns the wire-format names of the statuses reachable
// from the given status, for embedding in conflict responses.
func NextStatusNames(from Status) []string {
	allowed := nextStatuses(from)
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = s.String()
	}
	return names
}
