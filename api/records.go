package api

import (
	"strings"

	"github.com/M0ricette/lego/types"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

type dealsData struct {
	Result []dealRecord `json:"result"`
	Meta   metaRecord   `json:"meta"`
}

type salesData struct {
	Result []saleRecord `json:"result"`
}

type metaRecord struct {
	CurrentPage flexInt `json:"currentPage"`
	PageCount   flexInt `json:"pageCount"`
	PageSize    flexInt `json:"pageSize"`
	Count       flexInt `json:"count"`
}

type dealRecord struct {
	UUID        flexString `json:"uuid" validate:"required"`
	MongoID     flexString `json:"_id"`
	ID          flexString `json:"id"`
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Price       flexFloat  `json:"price"`
	Discount    flexFloat  `json:"discount"`
	Comments    flexInt    `json:"comments"`
	Temperature flexFloat  `json:"temperature"`
	Published   flexTime   `json:"published"`
}

type saleRecord struct {
	UUID      flexString `json:"uuid"`
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Price     flexFloat  `json:"price" validate:"gte=0"`
	Published flexTime   `json:"published"`
}

// normalize fills the unique id from the storage id when the API omits uuid.
func (r *dealRecord) normalize() {
	if strings.TrimSpace(string(r.UUID)) == "" {
		r.UUID = r.MongoID
	}
}

func (r dealRecord) toDeal() types.Deal {
	return types.Deal{
		UUID:        strings.TrimSpace(string(r.UUID)),
		ID:          strings.TrimSpace(string(r.ID)),
		Title:       strings.TrimSpace(r.Title),
		Link:        strings.TrimSpace(r.Link),
		Price:       float64(r.Price),
		Discount:    float64(r.Discount),
		Comments:    int(r.Comments),
		Temperature: float64(r.Temperature),
		Published:   r.Published.Time(),
	}
}

func (r saleRecord) toSale() types.Sale {
	return types.Sale{
		UUID:      strings.TrimSpace(string(r.UUID)),
		Title:     strings.TrimSpace(r.Title),
		Link:      strings.TrimSpace(r.Link),
		Price:     float64(r.Price),
		Published: r.Published.Time(),
	}
}

// toPagination fills fields the meta omits from the request and the page
// contents. Reported values are kept as is.
func (m metaRecord) toPagination(page, size, items int) types.Pagination {
	p := types.Pagination{
		CurrentPage: int(m.CurrentPage),
		PageCount:   int(m.PageCount),
		PageSize:    int(m.PageSize),
		Count:       int(m.Count),
	}
	if p.CurrentPage <= 0 {
		p.CurrentPage = page
	}
	if p.PageSize <= 0 {
		p.PageSize = size
	}
	if p.Count <= 0 {
		p.Count = items
	}
	if p.PageCount <= 0 && p.PageSize > 0 {
		p.PageCount = max(p.CurrentPage, (p.Count+p.PageSize-1)/p.PageSize)
	}
	return p
}
