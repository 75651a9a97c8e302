package repository

import (
	"beneficiary-registry/internal/domain/entity"

	"gorm.io/gorm"
)

type PersonRepository interface {
	LockIDSpace(db *gorm.DB) error
	NextID(db *gorm.DB) (int64, error)
	Create(db *gorm.DB, person *entity.Person) error
	Update(db *gorm.DB, person *entity.Person) error
	DeleteByIDs(db *gorm.DB, ids []int64) error
}
