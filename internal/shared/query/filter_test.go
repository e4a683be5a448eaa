package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage_Clamps(t *testing.T) {
	tests := []struct {
		name         string
		number, size int
		want         Page
	}{
		{"valid", 3, 50, Page{Number: 3, Size: 50}},
		{"zero number", 0, 50, Page{Number: 1, Size: 50}},
		{"negative size", 2, -1, Page{Number: 2, Size: 20}},
		{"oversized", 2, 500, Page{Number: 2, Size: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPage(tt.number, tt.size))
		})
	}
}

func TestPage_OffsetAndLimit(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Size: 20}.Offset())
	assert.Equal(t, 40, Page{Number: 3, Size: 20}.Offset())
	assert.Equal(t, 20, Page{}.Limit())
	assert.Equal(t, 0, Page{}.Offset())
	assert.Equal(t, 100, Page{Number: 2, Size: 500}.Offset())
}

func TestPage_TotalPages(t *testing.T) {
	p := Page{Number: 1, Size: 10}
	assert.Equal(t, 1, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
	assert.Equal(t, 5, Page{}.TotalPages(100))
}

func TestNewSort(t *testing.T) {
	assert.Equal(t, Sort{Field: "created_at", Desc: false}, NewSort("created_at", "ASC"))
	assert.Equal(t, Sort{Field: "created_at", Desc: true}, NewSort("created_at", "desc"))
	assert.True(t, NewSort("id", "").Desc)
}
