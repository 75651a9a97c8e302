package converter

import (
	"fmt"
	"time"
	"unicode/utf8"

	"beneficiary-registry/internal/delivery/dto"
	"beneficiary-registry/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// ResolvedLookups holds the keys resolved from the labels of a beneficiary
// form. A nil key means the label was empty or unknown.
type ResolvedLookups struct {
	ReligionID     *int64
	RaceID         *int64
	MunicipalityID *int64
	HospitalID     *int64
}

// BeneficiaryRequestToPerson builds the beneficiary's own PESSOAS row.
func BeneficiaryRequestToPerson(id int64, req *dto.BeneficiaryRequest, lookups ResolvedLookups) (*entity.Person, error) {
	registeredOn, err := parseDate(req.DataCad)
	if err != nil {
		return nil, fmt.Errorf("data_cad: %w", err)
	}
	birthDate, err := parseDate(req.DataNasc)
	if err != nil {
		return nil, fmt.Errorf("data_nasc: %w", err)
	}

	smoker := entity.SmokerNo
	if req.Fumante == "sim" {
		smoker = entity.SmokerYes
	}

	return &entity.Person{
		ID:             id,
		Kind:           entity.PersonKindBeneficiary,
		RegisteredOn:   registeredOn,
		Name:           nullableString(req.Nome),
		RG:             nullableString(req.Rg),
		CPF:            nullableString(req.Cpf),
		Sex:            sexCode(req.Sexo),
		BirthDate:      birthDate,
		Address:        nullableString(req.Endereco),
		ZipCode:        nullableString(req.Cep),
		Email:          nullableString(req.Email),
		Profession:     nullableString(req.Profissao),
		Phone:          nullableString(req.Fone),
		Pathology:      nullableString(req.Patologia),
		HospitalRecord: nullableString(req.MatHospital),
		Medication:     nullableString(req.Medicacao),
		Smoker:         &smoker,
		Notes:          nullableString(req.Observacao),
		ReligionID:     lookups.ReligionID,
		RaceID:         lookups.RaceID,
		MunicipalityID: lookups.MunicipalityID,
		HospitalID:     lookups.HospitalID,
	}, nil
}

// RelatedPersonRequestToPerson builds the PESSOAS row of a responsible party
// or family member. Only name, address and phone are recorded for them.
func RelatedPersonRequestToPerson(id int64, kind entity.PersonKind, req dto.RelatedPersonRequest) *entity.Person {
	return &entity.Person{
		ID:      id,
		Kind:    kind,
		Name:    nullableString(req.Nome),
		Address: nullableString(req.Endereco),
		Phone:   nullableString(req.Fone),
	}
}

// BeneficiaryRecordToListItem converts a read-query record to its list form.
func BeneficiaryRecordToListItem(record *entity.BeneficiaryRecord) *dto.BeneficiaryListItem {
	if record == nil {
		return nil
	}

	smoker := 0
	if record.Smoker != nil && *record.Smoker == entity.SmokerYes {
		smoker = 1
	}

	return &dto.BeneficiaryListItem{
		ID:                record.ID,
		NumeroCadastro:    record.ID,
		Nome:              record.Name,
		Cpf:               record.CPF,
		DataCadastro:      formatDate(record.RegisteredOn),
		DataNascimento:    formatDate(record.BirthDate),
		Endereco:          record.Address,
		Cidade:            record.Municipality,
		Cep:               record.ZipCode,
		Email:             record.Email,
		Fone:              record.Phone,
		Sexo:              sexLabel(record.Sex),
		Raca:              record.Race,
		Religiao:          record.Religion,
		Fumante:           smoker,
		Rg:                record.RG,
		TipoBeneficio:     record.BenefitType,
		Hospital:          record.Hospital,
		MatriculaHospital: record.HospitalRecord,
		Patologia:         record.Pathology,
		Medicacao:         record.Medication,
		Profissao:         record.Profession,
		Observacao:        record.Notes,
		Responsaveis:      relatedPeopleToResponses(record.Responsibles),
		Familia:           relatedPeopleToResponses(record.FamilyMembers),
	}
}

// BeneficiaryRecordsToListItems converts a slice, never returning nil.
func BeneficiaryRecordsToListItems(records []entity.BeneficiaryRecord) []dto.BeneficiaryListItem {
	items := make([]dto.BeneficiaryListItem, 0, len(records))
	for i := range records {
		items = append(items, *BeneficiaryRecordToListItem(&records[i]))
	}
	return items
}

// BeneficiaryRecordToDetail converts a record to the edit form shape.
func BeneficiaryRecordToDetail(record *entity.BeneficiaryRecord) *dto.BeneficiaryDetailResponse {
	if record == nil {
		return nil
	}

	smoker := ""
	if record.Smoker != nil {
		smoker = "nao"
		if *record.Smoker == entity.SmokerYes {
			smoker = "sim"
		}
	}

	return &dto.BeneficiaryDetailResponse{
		ID:            record.ID,
		NroCad:        record.ID,
		DataCad:       valueOf(formatDate(record.RegisteredOn)),
		TipoBeneficio: record.BenefitTypeID,
		Nome:          valueOf(record.Name),
		DataNasc:      valueOf(formatDate(record.BirthDate)),
		Email:         valueOf(record.Email),
		Endereco:      valueOf(record.Address),
		Cidade:        valueOf(record.Municipality),
		Cep:           valueOf(record.ZipCode),
		Sexo:          sexLabel(record.Sex),
		Raca:          valueOf(record.Race),
		Religiao:      valueOf(record.Religion),
		Fumante:       smoker,
		Cpf:           valueOf(record.CPF),
		Rg:            valueOf(record.RG),
		Fone:          valueOf(record.Phone),
		Profissao:     valueOf(record.Profession),
		Hospital:      valueOf(record.Hospital),
		MatHospital:   valueOf(record.HospitalRecord),
		Patologia:     valueOf(record.Pathology),
		Medicacao:     valueOf(record.Medication),
		Observacao:    valueOf(record.Notes),
		Responsaveis:  relatedPeopleToResponses(record.Responsibles),
		Familia:       relatedPeopleToResponses(record.FamilyMembers),
	}
}

func relatedPeopleToResponses(people entity.RelatedPeople) []dto.RelatedPersonResponse {
	responses := make([]dto.RelatedPersonResponse, 0, len(people))
	for _, p := range people {
		responses = append(responses, dto.RelatedPersonResponse{
			Nome:       p.Name,
			Parentesco: p.Kinship,
			Endereco:   p.Address,
			Fone:       p.Phone,
		})
	}
	return responses
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// sexCode stores the first letter of the submitted label ("Masculino" -> "M").
func sexCode(label string) *string {
	if label == "" {
		return nil
	}
	r, _ := utf8.DecodeRuneInString(label)
	code := string(r)
	return &code
}

func sexLabel(code *string) string {
	if code == nil {
		return ""
	}
	switch *code {
	case "M":
		return "Masculino"
	case "F":
		return "Feminino"
	default:
		return ""
	}
}
