// Package query holds the paging and sorting inputs of list endpoints.
package query

import (
	"strings"

	"github.com/bizblocks/bizblocks/internal/shared/constants"
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps number to at least 1 and size to [1, MaxPageSize], using the
// default size when size is not positive.
func NewPage(number, size int) Page {
	if number < 1 {
		number = constants.DefaultPage
	}
	if size < 1 {
		size = constants.DefaultPageSize
	}
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Limit() int {
	return NewPage(p.Number, p.Size).Size
}

func (p Page) Offset() int {
	n := NewPage(p.Number, p.Size)
	return (n.Number - 1) * n.Size
}

// TotalPages is never less than 1 so empty listings still report a page.
func (p Page) TotalPages(total int64) int {
	size := int64(p.Limit())
	if pages := int((total + size - 1) / size); pages > 1 {
		return pages
	}
	return 1
}

// Sort names a field; repositories map it onto a column whitelist.
type Sort struct {
	Field string
	Desc  bool
}

// NewSort reads order case-insensitively; anything but "asc" sorts descending.
func NewSort(field, order string) Sort {
	return Sort{Field: field, Desc: !strings.EqualFold(order, "asc")}
}

// ListFilter is embedded by the per-aggregate filters.
type ListFilter struct {
	Page
	Sort
}
