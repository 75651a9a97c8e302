package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// BeneficiaryRecord is a beneficiary as returned by the read query: the
// person's scalar fields, both the keys and the labels of its lookups, and
// the related people aggregated as JSON.
type BeneficiaryRecord struct {
	ID             int64      `gorm:"column:id"`
	RegisteredOn   *time.Time `gorm:"column:data_cadastro"`
	Name           *string    `gorm:"column:nome"`
	CPF            *string    `gorm:"column:cpf"`
	RG             *string    `gorm:"column:rg"`
	BirthDate      *time.Time `gorm:"column:data_nascimento"`
	Address        *string    `gorm:"column:endereco"`
	ZipCode        *string    `gorm:"column:cep"`
	Email          *string    `gorm:"column:email"`
	Phone          *string    `gorm:"column:fone"`
	Sex            *string    `gorm:"column:sexo"`
	Smoker         *string    `gorm:"column:fumante"`
	Pathology      *string    `gorm:"column:patologia"`
	HospitalRecord *string    `gorm:"column:matricula_hospital"`
	Medication     *string    `gorm:"column:medicacao"`
	Profession     *string    `gorm:"column:profissao"`
	Notes          *string    `gorm:"column:observacao"`

	BenefitTypeID *int64  `gorm:"column:cod_tib"`
	BenefitType   *string `gorm:"column:tipo_beneficio"`
	Municipality  *string `gorm:"column:cidade"`
	Race          *string `gorm:"column:raca"`
	Religion      *string `gorm:"column:religiao"`
	Hospital      *string `gorm:"column:hospital"`

	Responsibles  RelatedPeople `gorm:"column:responsaveis"`
	FamilyMembers RelatedPeople `gorm:"column:familia"`
}

// RelatedPerson is one element of the aggregated responsaveis/familia arrays.
type RelatedPerson struct {
	Name    *string `json:"nome"`
	Kinship *string `json:"parentesco"`
	Address *string `json:"endereco"`
	Phone   *string `json:"fone"`
}

// RelatedPeople scans a json/jsonb array column.
type RelatedPeople []RelatedPerson

// Value implements driver.Valuer.
func (p RelatedPeople) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner. NULL becomes an empty list.
func (p *RelatedPeople) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		*p = RelatedPeople{}
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal related people value:", value))
	}

	result := RelatedPeople{}
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*p = result
	return nil
}
