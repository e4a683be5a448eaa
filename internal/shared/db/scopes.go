package db

import (
	"gorm.io/gorm"

	"github.com/bizblocks/bizblocks/internal/shared/query"
)

// Paginate applies offset and limit from a page request.
//
//	db.Scopes(db.Paginate(filter.Page)).Find(&rows)
func Paginate(p query.Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit())
	}
}

// OrderBy maps the sort field through the allowed column whitelist and uses
// fallback for anything else.
func OrderBy(s query.Sort, allowed map[string]string, fallback string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column, ok := allowed[s.Field]
		if !ok {
			return db.Order(fallback)
		}
		if s.Desc {
			return db.Order(column + " DESC")
		}
		return db.Order(column + " ASC")
	}
}
