package layout

import (
	"testing"

	"github.com/etherdesk/etherwm/internal/types"
)

func TestCascade(t *testing.T) {
	origin := types.Point{X: 100, Y: 50}

	tests := []struct {
		index int
		want  types.Point
	}{
		{0, types.Point{X: 100, Y: 50}},
		{1, types.Point{X: 130, Y: 80}},
		{3, types.Point{X: 190, Y: 140}},
		{-2, types.Point{X: 100, Y: 50}},
	}

	for _, tt := range tests {
		if got := Cascade(tt.index, origin, 30); got != tt.want {
			t.Errorf("Cascade(%d) = %+v, want %+v", tt.index, got, tt.want)
		}
	}
}

func TestTranslate(t *testing.T) {
	got := Translate(types.Point{X: 300, Y: 260}, types.Point{X: 10, Y: 10})
	if got != (types.Point{X: 290, Y: 250}) {
		t.Errorf("Translate = %+v, want (290, 250)", got)
	}
}

func TestEffectiveRect(t *testing.T) {
	d := Desktop{Width: 1920, Height: 1080, MenuBarHeight: 32}
	def := types.Size{Width: 600, Height: 400}

	tests := []struct {
		name   string
		win    types.Window
		want   types.Rect
		wantOK bool
	}{
		{
			name:   "stored geometry",
			win:    types.Window{Position: types.Point{X: 10, Y: 20}, Size: types.Size{Width: 500, Height: 300}},
			want:   types.Rect{X: 10, Y: 20, Width: 500, Height: 300},
			wantOK: true,
		},
		{
			name:   "default size sentinel",
			win:    types.Window{Position: types.Point{X: 10, Y: 20}},
			want:   types.Rect{X: 10, Y: 20, Width: 600, Height: 400},
			wantOK: true,
		},
		{
			name:   "maximized ignores stored rect",
			win:    types.Window{Position: types.Point{X: 10, Y: 20}, IsMaximized: true},
			want:   types.Rect{X: 0, Y: 32, Width: 1920, Height: 1048},
			wantOK: true,
		},
		{
			name:   "minimized takes precedence",
			win:    types.Window{IsMinimized: true, IsMaximized: true},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.EffectiveRect(tt.win, def)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("rect = %+v, want %+v", got, tt.want)
			}
		})
	}
}
