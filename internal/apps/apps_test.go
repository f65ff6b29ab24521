package apps

import "testing"

func TestLookup(t *testing.T) {
	d, ok := Lookup(Calculator)
	if !ok {
		t.Fatal("calculator should be registered")
	}
	if d.DefaultSize.Width != 320 || d.DefaultSize.Height != 450 {
		t.Errorf("calculator default size = %+v, want 320x450", d.DefaultSize)
	}
	if !d.HideTitleBar {
		t.Error("calculator should be chromeless")
	}

	if _, ok := Lookup("photoshop"); ok {
		t.Error("unknown app should not be found")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{"terminal", Terminal, false},
		{" Notes ", Notes, false},
		{"doom", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDockApps(t *testing.T) {
	dock := DockApps()
	if len(dock) == 0 {
		t.Fatal("dock should not be empty")
	}
	if dock[0].ID != Finder {
		t.Errorf("first dock app = %s, want finder", dock[0].ID)
	}
	for _, d := range dock {
		if d.ID == About {
			t.Error("about should be hidden from the dock")
		}
	}
	if len(dock) != len(All())-1 {
		t.Errorf("dock has %d apps, want %d", len(dock), len(All())-1)
	}
}

func TestDefaultSizeFallback(t *testing.T) {
	if got := DefaultSize("retired-app"); got != FallbackSize {
		t.Errorf("DefaultSize(unknown) = %+v, want %+v", got, FallbackSize)
	}
	if got := DefaultSize(Terminal); got.Width != 600 || got.Height != 400 {
		t.Errorf("DefaultSize(terminal) = %+v, want 600x400", got)
	}
}

func TestRegistryIDsUnique(t *testing.T) {
	seen := make(map[ID]bool)
	for _, d := range All() {
		if seen[d.ID] {
			t.Errorf("duplicate app id %s", d.ID)
		}
		seen[d.ID] = true
		if d.DefaultSize.Width <= 0 || d.DefaultSize.Height <= 0 {
			t.Errorf("%s has non-positive default size", d.ID)
		}
	}
}
