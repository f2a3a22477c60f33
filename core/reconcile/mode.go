package reconcile

import (
	"fmt"
	"strings"

	"loyalty-sync/core/apperr"
)

// Mode selects which flow a run executes.
type Mode int

const (
	// ModeReconcile runs the full reconciliation and books new turnovers.
	ModeReconcile Mode = iota
	// ModeRetryFailed drains the failed-turnover queue and resubmits it.
	ModeRetryFailed
	// ModeDiagnostic runs the pipeline without booking anything.
	ModeDiagnostic
)

func (m Mode) String() string {
	switch m {
	case ModeReconcile:
		return "reconcile"
	case ModeRetryFailed:
		return "handlefailed"
	case ModeDiagnostic:
		return "diagnostic"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a process argument to a Mode. The empty string is a full reconciliation.
func ParseMode(arg string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "reconcile":
		return ModeReconcile, nil
	case "handlefailed":
		return ModeRetryFailed, nil
	case "test", "testing", "diagnostic", "diagnose":
		return ModeDiagnostic, nil
	default:
		return 0, apperr.Configuration("parse mode", fmt.Errorf("unknown mode %q", arg))
	}
}
