package types

import "strings"

// FilterKind selects which predicate narrows the visible deals.
type FilterKind string

const (
	FilterNone      FilterKind = ""
	FilterDiscount  FilterKind = "discount"
	FilterCommented FilterKind = "commented"
	FilterHot       FilterKind = "hot"
	FilterFavorites FilterKind = "favorites"
)

// Filter thresholds. Deals must strictly exceed them.
const (
	DiscountThreshold    = 50
	CommentsThreshold    = 15
	TemperatureThreshold = 100
)

// FilterKinds lists the selectable filters in button order.
var FilterKinds = []FilterKind{FilterDiscount, FilterCommented, FilterHot, FilterFavorites}

// Label returns the button caption for a filter.
func (k FilterKind) Label() string {
	switch k {
	case FilterDiscount:
		return "Best discount"
	case FilterCommented:
		return "Most commented"
	case FilterHot:
		return "Hot deals"
	case FilterFavorites:
		return "Favorites"
	default:
		return "All"
	}
}

// ApplyFilter returns the deals matching kind, preserving input order.
// isFavorite may be nil, in which case the favorites filter matches nothing.
// Unknown kinds behave like FilterNone.
func ApplyFilter(in []Deal, kind FilterKind, isFavorite func(uuid string) bool) []Deal {
	if len(in) == 0 {
		return nil
	}

	match := filterPredicate(normalizeFilterKind(kind), isFavorite)
	out := make([]Deal, 0, len(in))
	for _, deal := range in {
		if match(deal) {
			out = append(out, deal)
		}
	}
	return out
}

// ToggleFilter returns the filter that results from pressing kind's button
// while current is active: pressing the active button clears it.
func ToggleFilter(current, kind FilterKind) FilterKind {
	kind = normalizeFilterKind(kind)
	if kind == normalizeFilterKind(current) {
		return FilterNone
	}
	return kind
}

func normalizeFilterKind(kind FilterKind) FilterKind {
	switch FilterKind(strings.ToLower(strings.TrimSpace(string(kind)))) {
	case FilterDiscount:
		return FilterDiscount
	case FilterCommented:
		return FilterCommented
	case FilterHot:
		return FilterHot
	case FilterFavorites:
		return FilterFavorites
	default:
		return FilterNone
	}
}

func filterPredicate(kind FilterKind, isFavorite func(string) bool) func(Deal) bool {
	switch kind {
	case FilterDiscount:
		return func(d Deal) bool { return d.Discount > DiscountThreshold }
	case FilterCommented:
		return func(d Deal) bool { return d.Comments > CommentsThreshold }
	case FilterHot:
		return func(d Deal) bool { return d.Temperature > TemperatureThreshold }
	case FilterFavorites:
		return func(d Deal) bool { return isFavorite != nil && isFavorite(d.UUID) }
	default:
		return func(Deal) bool { return true }
	}
}
