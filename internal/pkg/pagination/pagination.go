package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// DefaultPageSize is the number of items per page when none is requested.
const DefaultPageSize = 20

// MaxPageSize caps pageSize so a single request cannot drain a table.
const MaxPageSize = 100

// Params carries validated pagination input. Offset is derived, not bound.
type Params struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Offset   int `json:"-"`
}

// FromQuery extracts page/pageSize from the request, clamping out-of-range
// values instead of rejecting them.
func FromQuery(c *gin.Context) *Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return &Params{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// TotalPages computes the page count for a result total.
func TotalPages(p *Params, total int64) int {
	pages := int(total) / p.PageSize
	if int(total)%p.PageSize > 0 {
		pages++
	}
	return pages
}
