package lifecycle

import "github.com/gluislopez/carwash-v2-sub000/internal/models"

// Actions recognized by the state machine.
const (
	ActionStart           = "start"
	ActionReady           = "ready"
	ActionPay             = "pay"
	ActionCancel          = "cancel"
	ActionRevertToWashing = "revert_to_washing"
	ActionRevertToReady   = "revert_to_ready"
)

// transitionMap lists, per action, the statuses a ticket may be in for the
// action to apply. Cancellation is reachable from any non-terminal status;
// the revert actions are explicit administrative corrections backward.
var transitionMap = map[string][]string{
	ActionStart:           {models.StatusWaiting},
	ActionReady:           {models.StatusInProgress},
	ActionPay:             {models.StatusReady},
	ActionCancel:          {models.StatusWaiting, models.StatusInProgress, models.StatusReady},
	ActionRevertToWashing: {models.StatusReady},
	ActionRevertToReady:   {models.StatusPaid},
}

// ValidTransition reports whether the action applies to a ticket currently in
// fromStatus.
func ValidTransition(action, fromStatus string) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}
