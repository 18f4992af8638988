package main

import "testing"

func TestSideConfigs(t *testing.T) {
	black := aiConfig{mode: "minimax", depth: 3, heuristic: "all_in_one"}
	white := aiConfig{mode: "alphabeta", depth: 2, heuristic: "mobility"}

	cases := []struct {
		code      string
		blackMode string
		whiteMode string
	}{
		{"A", "minimax", "alphabeta"},
		{"a", "minimax", "alphabeta"},
		{"X", "minimax", "random"},
		{"x", "minimax", "random"},
		{"O", "random", "alphabeta"},
		{"o", "random", "alphabeta"},
	}
	for _, tc := range cases {
		b, w := sideConfigs(tc.code, black, white)
		if b.mode != tc.blackMode || w.mode != tc.whiteMode {
			t.Errorf("sideConfigs(%q): black %q, white %q, want %q, %q",
				tc.code, b.mode, w.mode, tc.blackMode, tc.whiteMode)
		}
		if b.depth != black.depth || b.heuristic != black.heuristic {
			t.Errorf("sideConfigs(%q) changed black's depth or heuristic", tc.code)
		}
		if w.depth != white.depth || w.heuristic != white.heuristic {
			t.Errorf("sideConfigs(%q) changed white's depth or heuristic", tc.code)
		}
	}
}
