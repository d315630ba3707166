package transaction

import "github.com/lmirsal/binershare/internal/apperr"

// Action names a lifecycle transition request.
type Action string

const (
	ActionSetujui    Action = "setujui"
	ActionTolak      Action = "tolak"
	ActionBatalkan   Action = "batalkan"
	ActionSelesaikan Action = "selesaikan"
)

type rule struct {
	From string
	To   string
}

// The transition table. Status never moves backwards and never re-enters
// Menunggu once left.
var rules = map[Action]rule{
	ActionSetujui:    {From: StatusMenunggu, To: StatusDisetujui},
	ActionTolak:      {From: StatusMenunggu, To: StatusDitolak},
	ActionBatalkan:   {From: StatusMenunggu, To: StatusDibatalkan},
	ActionSelesaikan: {From: StatusDisetujui, To: StatusSelesai},
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(status string) bool {
	switch status {
	case StatusDitolak, StatusDibatalkan, StatusSelesai:
		return true
	}
	return false
}

// NextStatus validates an action against the current status and returns the
// target status. A non-matching source state fails with InvalidTransition.
func NextStatus(current string, action Action) (string, error) {
	r, ok := rules[action]
	if !ok {
		return "", apperr.Clone(apperr.ErrValidation, "aksi tidak dikenal")
	}
	if current != r.From {
		return "", apperr.Clone(apperr.ErrInvalidTransition,
			"transaksi berstatus "+current+" tidak dapat di-"+string(action))
	}
	return r.To, nil
}

// AllowedActor reports whether the acting party may perform the action.
// Approve and reject belong to the owner; cancel to either party while
// pending; complete to either party while approved.
func AllowedActor(action Action, isOwner, isRequester bool) bool {
	switch action {
	case ActionSetujui, ActionTolak:
		return isOwner
	case ActionBatalkan, ActionSelesaikan:
		return isOwner || isRequester
	}
	return false
}
