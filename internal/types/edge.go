package types

import "strings"

// Edge is the resize handle a gesture started on.
// Corner edges combine two axis rules independently.
type Edge string

const (
	EdgeN  Edge = "n"
	EdgeS  Edge = "s"
	EdgeE  Edge = "e"
	EdgeW  Edge = "w"
	EdgeNE Edge = "ne"
	EdgeNW Edge = "nw"
	EdgeSE Edge = "se"
	EdgeSW Edge = "sw"
)

// AllEdges lists the eight compass handles
var AllEdges = []Edge{EdgeN, EdgeS, EdgeE, EdgeW, EdgeNE, EdgeNW, EdgeSE, EdgeSW}

// ParseEdge converts a string to an Edge
func ParseEdge(s string) (Edge, bool) {
	e := Edge(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", false
	}
	return e, true
}

// Valid reports whether e is one of the eight handles
func (e Edge) Valid() bool {
	for _, known := range AllEdges {
		if e == known {
			return true
		}
	}
	return false
}

// HasNorth reports whether the edge moves the top edge
func (e Edge) HasNorth() bool { return strings.ContainsRune(string(e), 'n') }

// HasSouth reports whether the edge moves the bottom edge
func (e Edge) HasSouth() bool { return strings.ContainsRune(string(e), 's') }

// HasEast reports whether the edge moves the right edge
func (e Edge) HasEast() bool { return strings.ContainsRune(string(e), 'e') }

// HasWest reports whether the edge moves the left edge
func (e Edge) HasWest() bool { return strings.ContainsRune(string(e), 'w') }

// String returns the string representation of an Edge
func (e Edge) String() string {
	if e == "" {
		return "none"
	}
	return string(e)
}
