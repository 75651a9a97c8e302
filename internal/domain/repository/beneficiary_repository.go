package repository

import (
	"beneficiary-registry/internal/domain/entity"

	"gorm.io/gorm"
)

type BeneficiaryRepository interface {
	Create(db *gorm.DB, beneficiary *entity.Beneficiary) error
	Exists(db *gorm.DB, personID int64) (bool, error)
	UpdateBenefitType(db *gorm.DB, personID int64, benefitTypeID *int64) error
	FindAll(db *gorm.DB, search string) ([]entity.BeneficiaryRecord, error)
	FindByID(db *gorm.DB, personID int64) (*entity.BeneficiaryRecord, error)
}
