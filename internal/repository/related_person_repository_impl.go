package repository

import (
	"beneficiary-registry/internal/domain/entity"
	domainRepo "beneficiary-registry/internal/domain/repository"

	"gorm.io/gorm"
)

type relatedPersonRepository struct{}

func NewRelatedPersonRepository() domainRepo.RelatedPersonRepository {
	return &relatedPersonRepository{}
}

func (r *relatedPersonRepository) Create(db *gorm.DB, relation entity.Relation, beneficiaryID, personID, kinshipID int64) error {
	if relation == entity.RelationResponsible {
		return db.Create(&entity.Responsible{
			BeneficiaryID: beneficiaryID,
			PersonID:      personID,
			KinshipID:     kinshipID,
		}).Error
	}
	return db.Create(&entity.FamilyMember{
		BeneficiaryID: beneficiaryID,
		PersonID:      personID,
		KinshipID:     kinshipID,
	}).Error
}

func (r *relatedPersonRepository) FindPersonIDs(db *gorm.DB, relation entity.Relation, beneficiaryID int64) ([]int64, error) {
	var ids []int64
	err := db.Table(relation.TableName()).
		Where("numcad_ben = ?", beneficiaryID).
		Pluck(relation.PersonColumn(), &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *relatedPersonRepository) DeleteByBeneficiary(db *gorm.DB, relation entity.Relation, beneficiaryID int64) error {
	if relation == entity.RelationResponsible {
		return db.Where("numcad_ben = ?", beneficiaryID).Delete(&entity.Responsible{}).Error
	}
	return db.Where("numcad_ben = ?", beneficiaryID).Delete(&entity.FamilyMember{}).Error
}
