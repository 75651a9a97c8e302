package repository

import (
	"fmt"

	"beneficiary-registry/internal/domain/entity"
	domainRepo "beneficiary-registry/internal/domain/repository"

	"gorm.io/gorm"
)

// personIDLockKey is the pg_advisory_xact_lock key guarding numcad_pes
// allocation.
const personIDLockKey int64 = 0x50455353

type personRepository struct{}

func NewPersonRepository() domainRepo.PersonRepository {
	return &personRepository{}
}

// LockIDSpace serializes id allocation until the surrounding transaction
// ends. It must be called on a transaction handle.
func (r *personRepository) LockIDSpace(db *gorm.DB) error {
	if err := db.Exec("SELECT pg_advisory_xact_lock(?)", personIDLockKey).Error; err != nil {
		return fmt.Errorf("lock person id space: %w", err)
	}
	return nil
}

func (r *personRepository) NextID(db *gorm.DB) (int64, error) {
	var next int64
	if err := db.Raw("SELECT COALESCE(MAX(numcad_pes), 0) + 1 FROM pessoas").Row().Scan(&next); err != nil {
		return 0, fmt.Errorf("allocate person id: %w", err)
	}
	return next, nil
}

func (r *personRepository) Create(db *gorm.DB, person *entity.Person) error {
	return db.Create(person).Error
}

// Update overwrites every column except the id and the kind tag, so fields
// cleared in the form become NULL.
func (r *personRepository) Update(db *gorm.DB, person *entity.Person) error {
	return db.Model(person).Select("*").Omit("numcad_pes", "tipo_pes").Updates(person).Error
}

func (r *personRepository) DeleteByIDs(db *gorm.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Where("numcad_pes IN ?", ids).Delete(&entity.Person{}).Error
}
