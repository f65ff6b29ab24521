package reconcile

import (
	"testing"

	"github.com/etherdesk/etherwm/internal/types"
)

func TestRestore(t *testing.T) {
	input := []types.Window{
		{ID: "notes-1", AppID: "notes"},
		{ID: "", AppID: "notes"},
		{ID: "doom-1", AppID: "doom"},
		{ID: "notes-1", AppID: "terminal"},
		{ID: "calc-1", AppID: "calculator", IsMinimized: true},
	}

	got, active, report := Restore(input, "notes-1")

	if len(got) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(got))
	}
	if got[0].ID != "notes-1" || got[0].AppID != "notes" {
		t.Errorf("first record should win, got %+v", got[0])
	}
	if active != "notes-1" {
		t.Errorf("active = %q, want notes-1", active)
	}
	if report.MissingID != 1 {
		t.Errorf("MissingID = %d, want 1", report.MissingID)
	}
	if len(report.UnknownApps) != 1 || report.UnknownApps[0] != "doom-1" {
		t.Errorf("UnknownApps = %v", report.UnknownApps)
	}
	if len(report.Duplicates) != 1 {
		t.Errorf("Duplicates = %v", report.Duplicates)
	}
	if !report.Changed() {
		t.Error("report should be marked changed")
	}
}

func TestRestore_ActiveBackReference(t *testing.T) {
	windows := []types.Window{
		{ID: "a", AppID: "notes"},
		{ID: "b", AppID: "notes", IsMinimized: true},
	}

	tests := []struct {
		name        string
		active      string
		wantActive  string
		wantCleared bool
	}{
		{"valid", "a", "a", false},
		{"minimized", "b", "", true},
		{"missing", "zzz", "", true},
		{"none", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, active, report := Restore(windows, tt.active)
			if active != tt.wantActive {
				t.Errorf("active = %q, want %q", active, tt.wantActive)
			}
			if report.ActiveCleared != tt.wantCleared {
				t.Errorf("ActiveCleared = %v, want %v", report.ActiveCleared, tt.wantCleared)
			}
		})
	}
}

func TestRestore_CleanInputUnchanged(t *testing.T) {
	windows := []types.Window{{ID: "a", AppID: "finder"}}
	_, _, report := Restore(windows, "a")
	if report.Changed() {
		t.Errorf("clean input reported changes: %+v", report)
	}
}
