package repository

import (
	"errors"
	"fmt"
	"strings"

	"beneficiary-registry/internal/domain/entity"
	domainRepo "beneficiary-registry/internal/domain/repository"

	"gorm.io/gorm"
)

// beneficiarySelect returns every beneficiary with its lookup labels joined
// in and its related people aggregated into JSON arrays, oldest first.
const beneficiarySelect = `
SELECT
	p.numcad_pes AS id,
	p.datacad_pes AS data_cadastro,
	p.nome_pes AS nome,
	p.cpf_pes AS cpf,
	p.rg_pes AS rg,
	p.datanasc_pes AS data_nascimento,
	p.endereco_pes AS endereco,
	p.cep_pes AS cep,
	p.email_pes AS email,
	p.fone_pes AS fone,
	p.sexo_pes AS sexo,
	p.flag_fumante_pes AS fumante,
	p.patologia_pes AS patologia,
	p.matricula_hosp_pes AS matricula_hospital,
	p.medicamento_pes AS medicacao,
	p.profissao_pes AS profissao,
	p.observacoes_pes AS observacao,
	b.cod_tib AS cod_tib,
	tib.desc_tib AS tipo_beneficio,
	mun.nome_mun AS cidade,
	r.desc_rac AS raca,
	rel.desc_rel AS religiao,
	h.nome_hos AS hospital,
	COALESCE(
		(SELECT json_agg(json_build_object(
				'nome', resp_p.nome_pes,
				'parentesco', gpa_r.desc_gpa,
				'endereco', resp_p.endereco_pes,
				'fone', resp_p.fone_pes
			) ORDER BY resp_p.numcad_pes)
			FROM responsaveis resp
			JOIN pessoas resp_p ON resp.numcad_res = resp_p.numcad_pes
			LEFT JOIN grau_parentesco gpa_r ON resp.cod_gpa = gpa_r.cod_gpa
			WHERE resp.numcad_ben = p.numcad_pes),
		'[]'::json
	) AS responsaveis,
	COALESCE(
		(SELECT json_agg(json_build_object(
				'nome', fam_p.nome_pes,
				'parentesco', gpa_f.desc_gpa,
				'endereco', fam_p.endereco_pes,
				'fone', fam_p.fone_pes
			) ORDER BY fam_p.numcad_pes)
			FROM composicao_familiar cf
			JOIN pessoas fam_p ON cf.numcad_fam = fam_p.numcad_pes
			LEFT JOIN grau_parentesco gpa_f ON cf.cod_gpa = gpa_f.cod_gpa
			WHERE cf.numcad_ben = p.numcad_pes),
		'[]'::json
	) AS familia
FROM pessoas p
JOIN beneficiarios b ON p.numcad_pes = b.numcad_pes
LEFT JOIN tipo_beneficio tib ON b.cod_tib = tib.cod_tib
LEFT JOIN raca r ON p.cod_rac = r.cod_rac
LEFT JOIN religiao rel ON p.cod_rel = rel.cod_rel
LEFT JOIN municipio mun ON p.cod_mun = mun.cod_mun
LEFT JOIN hospital h ON p.cod_hos = h.cod_hos
WHERE p.tipo_pes = 'B'`

type beneficiaryRepository struct{}

func NewBeneficiaryRepository() domainRepo.BeneficiaryRepository {
	return &beneficiaryRepository{}
}

func (r *beneficiaryRepository) Create(db *gorm.DB, beneficiary *entity.Beneficiary) error {
	return db.Create(beneficiary).Error
}

func (r *beneficiaryRepository) Exists(db *gorm.DB, personID int64) (bool, error) {
	var count int64
	err := db.Model(&entity.Beneficiary{}).Where("numcad_pes = ?", personID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *beneficiaryRepository) UpdateBenefitType(db *gorm.DB, personID int64, benefitTypeID *int64) error {
	return db.Model(&entity.Beneficiary{}).
		Where("numcad_pes = ?", personID).
		Update("cod_tib", benefitTypeID).Error
}

// FindAll lists beneficiaries ordered by name. A non-empty search matches a
// name or CPF fragment, or the registration number.
func (r *beneficiaryRepository) FindAll(db *gorm.DB, search string) ([]entity.BeneficiaryRecord, error) {
	query := beneficiarySelect
	var args []interface{}

	if term := strings.TrimSpace(search); term != "" {
		pattern := "%" + term + "%"
		query += " AND (p.nome_pes ILIKE ? OR p.cpf_pes LIKE ? OR CAST(p.numcad_pes AS TEXT) LIKE ?)"
		args = append(args, pattern, pattern, pattern)
	}
	query += " ORDER BY p.nome_pes"

	records := []entity.BeneficiaryRecord{}
	if err := db.Raw(query, args...).Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("list beneficiaries: %w", err)
	}
	return records, nil
}

func (r *beneficiaryRepository) FindByID(db *gorm.DB, personID int64) (*entity.BeneficiaryRecord, error) {
	var records []entity.BeneficiaryRecord
	err := db.Raw(beneficiarySelect+" AND p.numcad_pes = ?", personID).Scan(&records).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find beneficiary %d: %w", personID, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}
