package transaction

import (
	"errors"
	"testing"

	"github.com/lmirsal/binershare/internal/apperr"
)

func TestNextStatusValidTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current string
		action  Action
		want    string
	}{
		{"approve pending", StatusMenunggu, ActionSetujui, StatusDisetujui},
		{"reject pending", StatusMenunggu, ActionTolak, StatusDitolak},
		{"cancel pending", StatusMenunggu, ActionBatalkan, StatusDibatalkan},
		{"complete approved", StatusDisetujui, ActionSelesaikan, StatusSelesai},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStatus(tt.current, tt.action)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("NextStatus(%s, %s) = %s, want %s", tt.current, tt.action, got, tt.want)
			}
		})
	}
}

func TestNextStatusInvalidTransitions(t *testing.T) {
	terminal := []string{StatusDitolak, StatusDibatalkan, StatusSelesai}
	actions := []Action{ActionSetujui, ActionTolak, ActionBatalkan, ActionSelesaikan}

	// No action moves a terminal transaction anywhere.
	for _, status := range terminal {
		for _, action := range actions {
			if _, err := NextStatus(status, action); err == nil {
				t.Fatalf("NextStatus(%s, %s) should fail", status, action)
			} else {
				var e *apperr.Error
				if !errors.As(err, &e) || e.Code != apperr.ErrInvalidTransition.Code {
					t.Fatalf("NextStatus(%s, %s) error = %v, want INVALID_TRANSITION", status, action, err)
				}
			}
		}
	}

	// Approved can only complete; pending cannot complete.
	invalid := []struct {
		current string
		action  Action
	}{
		{StatusDisetujui, ActionSetujui},
		{StatusDisetujui, ActionTolak},
		{StatusDisetujui, ActionBatalkan},
		{StatusMenunggu, ActionSelesaikan},
	}
	for _, tt := range invalid {
		if _, err := NextStatus(tt.current, tt.action); err == nil {
			t.Fatalf("NextStatus(%s, %s) should fail", tt.current, tt.action)
		}
	}
}

func TestNextStatusNeverReturnsMenunggu(t *testing.T) {
	statuses := []string{StatusMenunggu, StatusDisetujui, StatusDitolak, StatusDibatalkan, StatusSelesai}
	actions := []Action{ActionSetujui, ActionTolak, ActionBatalkan, ActionSelesaikan}

	for _, s := range statuses {
		for _, a := range actions {
			next, err := NextStatus(s, a)
			if err == nil && next == StatusMenunggu {
				t.Fatalf("NextStatus(%s, %s) re-entered Menunggu", s, a)
			}
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for status, want := range map[string]bool{
		StatusMenunggu:   false,
		StatusDisetujui:  false,
		StatusDitolak:    true,
		StatusDibatalkan: true,
		StatusSelesai:    true,
	} {
		if got := IsTerminal(status); got != want {
			t.Fatalf("IsTerminal(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestAllowedActor(t *testing.T) {
	tests := []struct {
		name        string
		action      Action
		isOwner     bool
		isRequester bool
		want        bool
	}{
		{"owner approves", ActionSetujui, true, false, true},
		{"requester cannot approve", ActionSetujui, false, true, false},
		{"owner rejects", ActionTolak, true, false, true},
		{"requester cannot reject", ActionTolak, false, true, false},
		{"requester cancels", ActionBatalkan, false, true, true},
		{"owner cancels", ActionBatalkan, true, false, true},
		{"owner completes", ActionSelesaikan, true, false, true},
		{"requester completes", ActionSelesaikan, false, true, true},
		{"stranger does nothing", ActionSelesaikan, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllowedActor(tt.action, tt.isOwner, tt.isRequester); got != tt.want {
				t.Fatalf("AllowedActor(%s, owner=%v, requester=%v) = %v, want %v",
					tt.action, tt.isOwner, tt.isRequester, got, tt.want)
			}
		})
	}
}

func TestDeriveTipe(t *testing.T) {
	for postStatus, want := range map[string]string{
		"Tukar":  TipeTukar,
		"Donasi": TipeDonasi,
		"Pinjam": TipePinjam,
	} {
		if got := DeriveTipe(postStatus); got != want {
			t.Fatalf("DeriveTipe(%s) = %s, want %s", postStatus, got, want)
		}
	}
}
