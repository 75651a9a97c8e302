package repository

import (
	"beneficiary-registry/internal/domain/entity"

	"gorm.io/gorm"
)

type LookupRepository interface {
	FindAll(db *gorm.DB, table entity.LookupTable) ([]entity.LookupOption, error)
	// ResolveID returns nil when value is empty or matches no row.
	ResolveID(db *gorm.DB, table entity.LookupTable, value string) (*int64, error)
}
