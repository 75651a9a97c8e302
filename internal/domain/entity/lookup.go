package entity

import "strings"

// LookupTable describes a read-only id -> label reference table.
type LookupTable struct {
	Name        string
	LabelColumn string
	// KeyColumn overrides the derived primary key column.
	KeyColumn string
	// ExposeCode makes listings return the numeric key as id. The other
	// tables are addressed by label, so their label doubles as id.
	ExposeCode bool
}

var (
	LookupBenefitType   = LookupTable{Name: "TIPO_BENEFICIO", LabelColumn: "DESC_TIB", KeyColumn: "cod_tib", ExposeCode: true}
	LookupMunicipality  = LookupTable{Name: "MUNICIPIO", LabelColumn: "NOME_MUN"}
	LookupRace          = LookupTable{Name: "RACA", LabelColumn: "DESC_RAC"}
	LookupReligion      = LookupTable{Name: "RELIGIAO", LabelColumn: "DESC_REL"}
	LookupHospital      = LookupTable{Name: "HOSPITAL", LabelColumn: "NOME_HOS"}
	LookupKinshipDegree = LookupTable{Name: "GRAU_PARENTESCO", LabelColumn: "DESC_GPA", KeyColumn: "cod_gpa"}
)

// LookupTables lists every lookup table known to the registry.
var LookupTables = []LookupTable{
	LookupBenefitType,
	LookupMunicipality,
	LookupRace,
	LookupReligion,
	LookupHospital,
	LookupKinshipDegree,
}

// IDColumn returns the primary key column of the table.
func (t LookupTable) IDColumn() string {
	if t.KeyColumn != "" {
		return t.KeyColumn
	}
	return LookupIDColumn(t.Name)
}

// LookupIDColumn returns the primary key column of a lookup table. Tables
// with a KeyColumn in the registry use it; the rest follow the "cod_" plus
// first three letters convention, lowercased.
func LookupIDColumn(tableName string) string {
	for _, table := range LookupTables {
		if table.KeyColumn != "" && strings.EqualFold(tableName, table.Name) {
			return table.KeyColumn
		}
	}
	prefix := strings.ToLower(tableName)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return "cod_" + prefix
}

// LookupOption is one row of a lookup table.
type LookupOption struct {
	Code  int64  `gorm:"column:code" json:"code"`
	Label string `gorm:"column:label" json:"label"`
}
