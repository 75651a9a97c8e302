package entity

import "time"

// PersonKind tags a row of the shared person table.
type PersonKind string

const (
	PersonKindBeneficiary  PersonKind = "B"
	PersonKindResponsible  PersonKind = "R"
	PersonKindFamilyMember PersonKind = "F"
)

// Person is a row of PESSOAS. Every kind of person shares the numcad_pes
// identifier space, which is allocated by the application (max + 1).
type Person struct {
	ID             int64      `gorm:"column:numcad_pes;primaryKey;autoIncrement:false"`
	Kind           PersonKind `gorm:"column:tipo_pes;type:char(1);not null"`
	RegisteredOn   *time.Time `gorm:"column:datacad_pes;type:date"`
	Name           *string    `gorm:"column:nome_pes"`
	RG             *string    `gorm:"column:rg_pes"`
	CPF            *string    `gorm:"column:cpf_pes"`
	Sex            *string    `gorm:"column:sexo_pes;type:char(1)"`
	BirthDate      *time.Time `gorm:"column:datanasc_pes;type:date"`
	Address        *string    `gorm:"column:endereco_pes"`
	ZipCode        *string    `gorm:"column:cep_pes"`
	Email          *string    `gorm:"column:email_pes"`
	Profession     *string    `gorm:"column:profissao_pes"`
	Phone          *string    `gorm:"column:fone_pes"`
	Pathology      *string    `gorm:"column:patologia_pes"`
	HospitalRecord *string    `gorm:"column:matricula_hosp_pes"`
	Medication     *string    `gorm:"column:medicamento_pes"`
	Smoker         *string    `gorm:"column:flag_fumante_pes;type:char(1)"`
	Notes          *string    `gorm:"column:observacoes_pes"`
	ReligionID     *int64     `gorm:"column:cod_rel"`
	RaceID         *int64     `gorm:"column:cod_rac"`
	MunicipalityID *int64     `gorm:"column:cod_mun"`
	HospitalID     *int64     `gorm:"column:cod_hos"`
}

func (Person) TableName() string {
	return "pessoas"
}

// Flag values stored in flag_fumante_pes.
const (
	SmokerYes = "1"
	SmokerNo  = "0"
)
