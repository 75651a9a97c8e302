package entity

// Relation identifies one of the two beneficiary-to-person association
// tables. Both carry the beneficiary id, the related person id and the
// kinship degree.
type Relation string

const (
	RelationResponsible  Relation = "responsible"
	RelationFamilyMember Relation = "family_member"
)

// PersonKind is the tipo_pes value given to people created for the relation.
func (r Relation) PersonKind() PersonKind {
	if r == RelationResponsible {
		return PersonKindResponsible
	}
	return PersonKindFamilyMember
}

// TableName is the association table backing the relation.
func (r Relation) TableName() string {
	if r == RelationResponsible {
		return Responsible{}.TableName()
	}
	return FamilyMember{}.TableName()
}

// PersonColumn is the column holding the related person's id.
func (r Relation) PersonColumn() string {
	if r == RelationResponsible {
		return "numcad_res"
	}
	return "numcad_fam"
}

// Responsible is a row of RESPONSAVEIS.
type Responsible struct {
	BeneficiaryID int64 `gorm:"column:numcad_ben;primaryKey;autoIncrement:false"`
	PersonID      int64 `gorm:"column:numcad_res;primaryKey;autoIncrement:false"`
	KinshipID     int64 `gorm:"column:cod_gpa;not null"`
}

func (Responsible) TableName() string {
	return "responsaveis"
}

// FamilyMember is a row of COMPOSICAO_FAMILIAR.
type FamilyMember struct {
	BeneficiaryID int64 `gorm:"column:numcad_ben;primaryKey;autoIncrement:false"`
	PersonID      int64 `gorm:"column:numcad_fam;primaryKey;autoIncrement:false"`
	KinshipID     int64 `gorm:"column:cod_gpa;not null"`
}

func (FamilyMember) TableName() string {
	return "composicao_familiar"
}
