package types

import (
	"sort"
	"time"

	"github.com/samber/lo"
)

// Deal represents a single tracked listing returned by the deals API.
type Deal struct {
	UUID        string    // Stable unique id, used for favorites
	ID          string    // Display id shared across variants (set number)
	Title       string    // Listing title
	Link        string    // Outbound link to the deal
	Price       float64   // Price in EUR
	Discount    float64   // Percentage, 0 when absent
	Comments    int       // Comment count, 0 when absent
	Temperature float64   // Community popularity score, 0 when absent
	Published   time.Time // Posting time
}

// Pagination describes the page a deals batch belongs to.
type Pagination struct {
	CurrentPage int
	PageCount   int
	PageSize    int
	Count       int
}

// PageOptions lists the selectable page numbers, 1-based.
func (p Pagination) PageOptions() []int {
	if p.PageCount <= 0 {
		return nil
	}
	out := make([]int, p.PageCount)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// DisplayIDs returns the distinct display ids of deals in ascending order.
func DisplayIDs(deals []Deal) []string {
	ids := lo.Uniq(lo.FilterMap(deals, func(d Deal, _ int) (string, bool) {
		return d.ID, d.ID != ""
	}))
	sort.Strings(ids)
	return ids
}
