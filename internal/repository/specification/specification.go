package specification

import "gorm.io/gorm"

// Specification narrows a query. Repositories apply them in order before
// executing.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
