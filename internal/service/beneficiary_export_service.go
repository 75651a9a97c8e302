package service

import (
	"bytes"
	"fmt"
	"strings"

	"beneficiary-registry/internal/delivery/dto"

	"github.com/xuri/excelize/v2"
)

const beneficiarySheetName = "Beneficiarios"

// BeneficiaryExportHeader is the header row of the spreadsheet export.
var BeneficiaryExportHeader = []string{
	"Nro. Cad.",
	"Nome",
	"CPF",
	"RG",
	"Data Cad.",
	"Data Nasc.",
	"Sexo",
	"Tipo de Benefício",
	"Endereço",
	"Cidade",
	"CEP",
	"Fone",
	"Email",
	"Raça",
	"Religião",
	"Fumante",
	"Profissão",
	"Hospital",
	"Mat. Hospital",
	"Patologia",
	"Medicação",
	"Observação",
	"Responsáveis",
	"Composição Familiar",
}

var beneficiaryColumnWidths = []float64{
	10, 35, 15, 15, 12, 12, 12, 22, 40, 20, 12, 16, 30, 12, 16, 9, 20, 30, 15, 30, 30, 40, 50, 50,
}

type BeneficiaryExporter struct{}

func NewBeneficiaryExporter() *BeneficiaryExporter {
	return &BeneficiaryExporter{}
}

// Export renders beneficiaries as an XLSX workbook with a frozen header row.
func (e *BeneficiaryExporter) Export(items []dto.BeneficiaryListItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", beneficiarySheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range BeneficiaryExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(beneficiarySheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(beneficiarySheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(beneficiarySheetName, name, name, beneficiaryColumnWidths[col]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, item := range items {
		row := i + 2
		if err := f.SetSheetRow(beneficiarySheetName, fmt.Sprintf("A%d", row), beneficiaryRow(item)); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	if err := f.SetPanes(beneficiarySheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func beneficiaryRow(item dto.BeneficiaryListItem) *[]interface{} {
	smoker := "Não"
	if item.Fumante == 1 {
		smoker = "Sim"
	}

	row := []interface{}{
		item.NumeroCadastro,
		str(item.Nome),
		str(item.Cpf),
		str(item.Rg),
		str(item.DataCadastro),
		str(item.DataNascimento),
		item.Sexo,
		str(item.TipoBeneficio),
		str(item.Endereco),
		str(item.Cidade),
		str(item.Cep),
		str(item.Fone),
		str(item.Email),
		str(item.Raca),
		str(item.Religiao),
		smoker,
		str(item.Profissao),
		str(item.Hospital),
		str(item.MatriculaHospital),
		str(item.Patologia),
		str(item.Medicacao),
		str(item.Observacao),
		relatedSummary(item.Responsaveis),
		relatedSummary(item.Familia),
	}
	return &row
}

// relatedSummary flattens related people to "Nome (Parentesco); ...".
func relatedSummary(people []dto.RelatedPersonResponse) string {
	parts := make([]string, 0, len(people))
	for _, p := range people {
		entry := str(p.Nome)
		if kinship := str(p.Parentesco); kinship != "" {
			entry = fmt.Sprintf("%s (%s)", entry, kinship)
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, "; ")
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
