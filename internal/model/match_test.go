package model

import "testing"

func TestLocationString(t *testing.T) {
	loc := Location{File: "src/a.go", Line: 12, Col: 3, Offset: 240}
	if got := loc.String(); got != "src/a.go:12:3" {
		t.Fatalf("String = %q", got)
	}
}

func TestLocationLess(t *testing.T) {
	cases := []struct {
		a, b Location
		want bool
	}{
		{Location{File: "a", Line: 1, Col: 1}, Location{File: "b", Line: 1, Col: 1}, true},
		{Location{File: "a", Line: 1, Col: 1}, Location{File: "a", Line: 2, Col: 1}, true},
		{Location{File: "a", Line: 2, Col: 1}, Location{File: "a", Line: 2, Col: 5}, true},
		{Location{File: "a", Line: 2, Col: 5}, Location{File: "a", Line: 2, Col: 5}, false},
		{Location{File: "b", Line: 1, Col: 1}, Location{File: "a", Line: 9, Col: 9}, false},
	}
	for i, tc := range cases {
		if got := tc.a.Less(tc.b); got != tc.want {
			t.Fatalf("case %d: Less(%v, %v) = %v, want %v", i, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestMatchKindHelpers(t *testing.T) {
	c := Match{Kind: MatchKindComment, Label: "x", Count: 2}
	if !c.Comment() || c.Invalid() {
		t.Fatalf("comment helpers wrong: %+v", c)
	}
	inv := Match{Kind: MatchKindInvalid, Reason: ReasonEmptyLabel}
	if inv.Comment() || !inv.Invalid() {
		t.Fatalf("invalid helpers wrong: %+v", inv)
	}
}
