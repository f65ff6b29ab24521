package main

import (
	"testing"

	"github.com/etherdesk/etherwm/internal/types"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    types.Point
		wantErr bool
	}{
		{"300,260", types.Point{X: 300, Y: 260}, false},
		{" -10 , 4.5 ", types.Point{X: -10, Y: 4.5}, false},
		{"300", types.Point{}, true},
		{"a,b", types.Point{}, true},
		{"1,2,3", types.Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parsePoint(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEdgePoint(t *testing.T) {
	r := types.Rect{X: 100, Y: 50, Width: 600, Height: 400}

	tests := []struct {
		edge types.Edge
		want types.Point
	}{
		{types.EdgeN, types.Point{X: 400, Y: 50}},
		{types.EdgeS, types.Point{X: 400, Y: 450}},
		{types.EdgeE, types.Point{X: 700, Y: 250}},
		{types.EdgeW, types.Point{X: 100, Y: 250}},
		{types.EdgeSE, types.Point{X: 700, Y: 450}},
		{types.EdgeNW, types.Point{X: 100, Y: 50}},
	}

	for _, tt := range tests {
		t.Run(string(tt.edge), func(t *testing.T) {
			if got := edgePoint(r, tt.edge); got != tt.want {
				t.Errorf("edgePoint(%s) = %v, want %v", tt.edge, got, tt.want)
			}
		})
	}
}
