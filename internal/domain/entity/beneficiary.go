package entity

// Beneficiary links a kind=B person to its benefit type.
type Beneficiary struct {
	PersonID      int64  `gorm:"column:numcad_pes;primaryKey;autoIncrement:false"`
	BenefitTypeID *int64 `gorm:"column:cod_tib"`
}

func (Beneficiary) TableName() string {
	return "beneficiarios"
}
