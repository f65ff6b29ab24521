// Package reconcile repairs a window list restored from disk so the live
// registry invariants hold before the session starts using it.
package reconcile

import (
	"github.com/etherdesk/etherwm/internal/apps"
	"github.com/etherdesk/etherwm/internal/types"
)

// Report describes what Restore had to change
type Report struct {
	MissingID     int      // Records dropped for having no id
	UnknownApps   []string // Window ids dropped because the app no longer exists
	Duplicates    []string // Window ids dropped as repeats (first record wins)
	ActiveCleared bool     // Active id pointed at a missing or minimized window
}

// Changed returns true if Restore altered its input
func (r Report) Changed() bool {
	return r.MissingID > 0 || len(r.UnknownApps) > 0 || len(r.Duplicates) > 0 || r.ActiveCleared
}

// Restore drops records that cannot live in the registry and fixes the
// active window back-reference.
func Restore(windows []types.Window, active string) ([]types.Window, string, Report) {
	var report Report

	valid := make([]types.Window, 0, len(windows))
	seen := make(map[string]bool, len(windows))

	for _, w := range windows {
		switch {
		case w.ID == "":
			report.MissingID++
		case !apps.Known(apps.ID(w.AppID)):
			report.UnknownApps = append(report.UnknownApps, w.ID)
		case seen[w.ID]:
			report.Duplicates = append(report.Duplicates, w.ID)
		default:
			seen[w.ID] = true
			valid = append(valid, w)
		}
	}

	if active != "" && !activeIsValid(valid, active) {
		active = ""
		report.ActiveCleared = true
	}

	return valid, active, report
}

func activeIsValid(windows []types.Window, active string) bool {
	for _, w := range windows {
		if w.ID == active {
			return !w.IsMinimized
		}
	}
	return false
}
