package types

import (
	"sort"
	"strings"
)

// SortKey selects the ordering of visible deals.
type SortKey string

const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortDateAsc   SortKey = "date-asc"
	SortDateDesc  SortKey = "date-desc"
)

// DefaultSortKey is active until the user picks another one.
const DefaultSortKey = SortPriceAsc

// SortKeys lists the sort keys in the order the sort control cycles through.
var SortKeys = []SortKey{SortPriceAsc, SortPriceDesc, SortDateAsc, SortDateDesc}

// Label returns the sort control caption.
func (k SortKey) Label() string {
	switch k {
	case SortPriceAsc:
		return "Cheapest"
	case SortPriceDesc:
		return "Expensive"
	case SortDateAsc:
		return "Oldest"
	case SortDateDesc:
		return "Recently published"
	default:
		return string(k)
	}
}

// Next returns the key following k in SortKeys, wrapping around.
func (k SortKey) Next() SortKey {
	for i, key := range SortKeys {
		if key == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return DefaultSortKey
}

// SortDeals returns a stably sorted copy of input deals.
// Unknown keys keep the input order.
func SortDeals(in []Deal, key SortKey) []Deal {
	out := append([]Deal(nil), in...)
	if len(out) <= 1 {
		return out
	}

	key, ok := normalizeSortKey(key)
	if !ok {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := compareDeals(out[i], out[j], key)
		if key == SortPriceDesc || key == SortDateDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// VisibleDeals applies the filter first and sorts the filtered subset.
func VisibleDeals(in []Deal, kind FilterKind, key SortKey, isFavorite func(string) bool) []Deal {
	return SortDeals(ApplyFilter(in, kind, isFavorite), key)
}

func normalizeSortKey(key SortKey) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(string(key)))) {
	case SortPriceAsc:
		return SortPriceAsc, true
	case SortPriceDesc:
		return SortPriceDesc, true
	case SortDateAsc:
		return SortDateAsc, true
	case SortDateDesc:
		return SortDateDesc, true
	default:
		return key, false
	}
}

func compareDeals(a, b Deal, key SortKey) int {
	switch key {
	case SortDateAsc, SortDateDesc:
		return a.Published.Compare(b.Published)
	default:
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		default:
			return 0
		}
	}
}
