package repository

import (
	"beneficiary-registry/internal/domain/entity"

	"gorm.io/gorm"
)

type RelatedPersonRepository interface {
	Create(db *gorm.DB, relation entity.Relation, beneficiaryID, personID, kinshipID int64) error
	FindPersonIDs(db *gorm.DB, relation entity.Relation, beneficiaryID int64) ([]int64, error)
	DeleteByBeneficiary(db *gorm.DB, relation entity.Relation, beneficiaryID int64) error
}
