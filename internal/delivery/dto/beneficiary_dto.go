package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Request DTOs

// BeneficiaryRequest is the payload submitted by the beneficiary form, for
// both creation and update. Lookup fields carry labels, except TipoBeneficio
// which carries the benefit type id.
type BeneficiaryRequest struct {
	DataCad       string                 `json:"data_cad" validate:"omitempty,datetime=2006-01-02"`
	Nome          string                 `json:"nome"`
	Endereco      string                 `json:"endereco"`
	Cidade        string                 `json:"cidade"`
	Cep           string                 `json:"cep"`
	Email         string                 `json:"email"`
	DataNasc      string                 `json:"data_nasc" validate:"omitempty,datetime=2006-01-02"`
	Sexo          string                 `json:"sexo"`
	Raca          string                 `json:"raca"`
	Religiao      string                 `json:"religiao"`
	Fumante       string                 `json:"fumante"`
	Cpf           string                 `json:"cpf"`
	Rg            string                 `json:"rg"`
	Hospital      string                 `json:"hospital"`
	MatHospital   string                 `json:"mat_hospital"`
	Patologia     string                 `json:"patologia"`
	TipoBeneficio LookupCode             `json:"tipo_beneficio"`
	Medicacao     string                 `json:"medicacao"`
	Profissao     string                 `json:"profissao"`
	Fone          string                 `json:"fone"`
	Observacao    string                 `json:"observacao"`
	Responsaveis  []RelatedPersonRequest `json:"responsaveis" validate:"dive"`
	Familia       []RelatedPersonRequest `json:"familia" validate:"dive"`
}

// RelatedPersonRequest is one row of the responsaveis/familia sub-forms.
type RelatedPersonRequest struct {
	Nome       string `json:"nome"`
	Parentesco string `json:"parentesco"`
	Endereco   string `json:"endereco"`
	Fone       string `json:"fone"`
}

// IsEmpty reports whether every field of the row was left blank.
func (r RelatedPersonRequest) IsEmpty() bool {
	return r.Nome == "" && r.Parentesco == "" && r.Endereco == "" && r.Fone == ""
}

// LookupCode is a lookup id that the client may send as a JSON number, a
// numeric string (select values), an empty string or null.
type LookupCode struct {
	Value *int64
}

func (c *LookupCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		c.Value = nil
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			c.Value = nil
			return nil
		}
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid lookup code %s", string(data))
	}
	c.Value = &value
	return nil
}

func (c LookupCode) MarshalJSON() ([]byte, error) {
	if c.Value == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(*c.Value, 10)), nil
}

// Response DTOs

// SaveBeneficiaryResponse is returned by create and update.
type SaveBeneficiaryResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// RelatedPersonResponse is one element of responsaveis/familia.
type RelatedPersonResponse struct {
	Nome       *string `json:"nome"`
	Parentesco *string `json:"parentesco"`
	Endereco   *string `json:"endereco"`
	Fone       *string `json:"fone"`
}

// BeneficiaryListItem is the list representation: lookups appear as labels
// and dates as YYYY-MM-DD.
type BeneficiaryListItem struct {
	ID                int64                   `json:"id"`
	NumeroCadastro    int64                   `json:"numeroCadastro"`
	Nome              *string                 `json:"nome"`
	Cpf               *string                 `json:"cpf"`
	DataCadastro      *string                 `json:"dataCadastro"`
	DataNascimento    *string                 `json:"dataNascimento"`
	Endereco          *string                 `json:"endereco"`
	Cidade            *string                 `json:"cidade"`
	Cep               *string                 `json:"cep"`
	Email             *string                 `json:"email"`
	Fone              *string                 `json:"fone"`
	Sexo              string                  `json:"sexo"`
	Raca              *string                 `json:"raca"`
	Religiao          *string                 `json:"religiao"`
	Fumante           int                     `json:"fumante"`
	Rg                *string                 `json:"rg"`
	TipoBeneficio     *string                 `json:"tipoBeneficio"`
	Hospital          *string                 `json:"hospital"`
	MatriculaHospital *string                 `json:"matriculaHospital"`
	Patologia         *string                 `json:"patologia"`
	Medicacao         *string                 `json:"medicacao"`
	Profissao         *string                 `json:"profissao"`
	Observacao        *string                 `json:"observacao"`
	Responsaveis      []RelatedPersonResponse `json:"responsaveis"`
	Familia           []RelatedPersonResponse `json:"familia"`
}

// BeneficiaryDetailResponse mirrors BeneficiaryRequest so the form can be
// prefilled for editing and submitted back unchanged.
type BeneficiaryDetailResponse struct {
	ID            int64                   `json:"id"`
	NroCad        int64                   `json:"nro_cad"`
	DataCad       string                  `json:"data_cad"`
	TipoBeneficio *int64                  `json:"tipo_beneficio"`
	Nome          string                  `json:"nome"`
	DataNasc      string                  `json:"data_nasc"`
	Email         string                  `json:"email"`
	Endereco      string                  `json:"endereco"`
	Cidade        string                  `json:"cidade"`
	Cep           string                  `json:"cep"`
	Sexo          string                  `json:"sexo"`
	Raca          string                  `json:"raca"`
	Religiao      string                  `json:"religiao"`
	Fumante       string                  `json:"fumante"`
	Cpf           string                  `json:"cpf"`
	Rg            string                  `json:"rg"`
	Fone          string                  `json:"fone"`
	Profissao     string                  `json:"profissao"`
	Hospital      string                  `json:"hospital"`
	MatHospital   string                  `json:"mat_hospital"`
	Patologia     string                  `json:"patologia"`
	Medicacao     string                  `json:"medicacao"`
	Observacao    string                  `json:"observacao"`
	Responsaveis  []RelatedPersonResponse `json:"responsaveis"`
	Familia       []RelatedPersonResponse `json:"familia"`
}
