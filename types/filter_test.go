package types

import "testing"

func filterFixture() []Deal {
	return []Deal{
		{UUID: "a", ID: "42182", Discount: 60, Comments: 3, Temperature: 40},
		{UUID: "b", ID: "10316", Discount: 20, Comments: 30, Temperature: 150},
		{UUID: "c", ID: "42182", Discount: 51, Comments: 16, Temperature: 100},
		{UUID: "d", ID: "75192", Discount: 0, Comments: 0, Temperature: 0},
		{UUID: "e", ID: "60337", Discount: 50, Comments: 15, Temperature: 101},
	}
}

func TestApplyFilter(t *testing.T) {
	favorites := map[string]bool{"b": true, "d": true}
	isFavorite := func(uuid string) bool { return favorites[uuid] }

	tests := []struct {
		name string
		kind FilterKind
		want []string
	}{
		{name: "none returns all", kind: FilterNone, want: []string{"a", "b", "c", "d", "e"}},
		{name: "discount strictly above 50", kind: FilterDiscount, want: []string{"a", "c"}},
		{name: "comments strictly above 15", kind: FilterCommented, want: []string{"b", "c"}},
		{name: "temperature strictly above 100", kind: FilterHot, want: []string{"b", "e"}},
		{name: "favorites membership", kind: FilterFavorites, want: []string{"b", "d"}},
		{name: "unknown kind is identity", kind: FilterKind("cheapest"), want: []string{"a", "b", "c", "d", "e"}},
		{name: "kind is normalized", kind: FilterKind(" HOT "), want: []string{"b", "e"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyFilter(filterFixture(), tc.kind, isFavorite)
			assertUUIDs(t, got, tc.want)
		})
	}
}

func TestApplyFilterIsOrderedSubsequence(t *testing.T) {
	in := filterFixture()
	for _, kind := range append([]FilterKind{FilterNone}, FilterKinds...) {
		got := ApplyFilter(in, kind, func(uuid string) bool { return uuid == "c" || uuid == "e" })
		j := 0
		for _, deal := range got {
			for j < len(in) && in[j].UUID != deal.UUID {
				j++
			}
			if j == len(in) {
				t.Fatalf("filter %q: %q is not an ordered subsequence of the input", kind, deal.UUID)
			}
			j++
		}
	}
}

func TestApplyFilterFavoritesWithoutStore(t *testing.T) {
	got := ApplyFilter(filterFixture(), FilterFavorites, nil)
	if len(got) != 0 {
		t.Fatalf("expected no favorites without a membership func, got %d", len(got))
	}
}

func TestApplyFilterEmptyInput(t *testing.T) {
	if got := ApplyFilter(nil, FilterHot, nil); len(got) != 0 {
		t.Fatalf("expected zero results, got %d", len(got))
	}
}

func TestToggleFilter(t *testing.T) {
	tests := []struct {
		name    string
		current FilterKind
		pressed FilterKind
		want    FilterKind
	}{
		{name: "activate from none", current: FilterNone, pressed: FilterHot, want: FilterHot},
		{name: "press active clears", current: FilterHot, pressed: FilterHot, want: FilterNone},
		{name: "press other replaces", current: FilterHot, pressed: FilterDiscount, want: FilterDiscount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToggleFilter(tc.current, tc.pressed); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}

	state := ToggleFilter(ToggleFilter(FilterNone, FilterFavorites), FilterFavorites)
	if state != FilterNone {
		t.Fatalf("expected double press to return to none, got %q", state)
	}
}

func assertUUIDs(t *testing.T, got []Deal, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d deals, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].UUID != want[i] {
			t.Fatalf("index %d: expected uuid %q, got %q", i, want[i], got[i].UUID)
		}
	}
}
