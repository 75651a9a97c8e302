package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"beneficiary-registry/internal/delivery/dto"
	"beneficiary-registry/internal/service"
	"beneficiary-registry/internal/usecase"
	"beneficiary-registry/pkg/response"
	"beneficiary-registry/pkg/validator"

	"github.com/gorilla/mux"
)

const (
	msgBeneficiarySaved   = "Beneficiário cadastrado com sucesso!"
	msgBeneficiaryUpdated = "Beneficiário atualizado com sucesso!"
	msgSaveFailed         = "Erro interno do servidor ao salvar os dados."
	msgListFailed         = "Erro interno do servidor ao buscar os dados."
	msgNotFound           = "Beneficiário não encontrado."
	msgInvalidID          = "ID de beneficiário inválido."
	msgInvalidBody        = "Corpo da requisição inválido."
	msgExportFailed       = "Erro ao exportar beneficiários."

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type BeneficiaryHandler struct {
	beneficiaryUsecase usecase.BeneficiaryUsecase
	validator          *validator.CustomValidator
	exporter           *service.BeneficiaryExporter
}

func NewBeneficiaryHandler(beneficiaryUsecase usecase.BeneficiaryUsecase, validator *validator.CustomValidator, exporter *service.BeneficiaryExporter) *BeneficiaryHandler {
	return &BeneficiaryHandler{
		beneficiaryUsecase: beneficiaryUsecase,
		validator:          validator,
		exporter:           exporter,
	}
}

func (h *BeneficiaryHandler) CreateBeneficiary(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	id, err := h.beneficiaryUsecase.Create(r.Context(), req)
	if err != nil {
		h.writeSaveError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, dto.SaveBeneficiaryResponse{
		Message: msgBeneficiarySaved,
		ID:      id,
	})
}

func (h *BeneficiaryHandler) UpdateBeneficiary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	savedID, err := h.beneficiaryUsecase.Update(r.Context(), id, req)
	if err != nil {
		h.writeSaveError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.SaveBeneficiaryResponse{
		Message: msgBeneficiaryUpdated,
		ID:      savedID,
	})
}

func (h *BeneficiaryHandler) GetAllBeneficiaries(w http.ResponseWriter, r *http.Request) {
	items, err := h.beneficiaryUsecase.GetAll(r.Context(), searchTerm(r))
	if err != nil {
		response.InternalServerError(w, msgListFailed)
		return
	}

	response.JSON(w, http.StatusOK, items)
}

func (h *BeneficiaryHandler) GetBeneficiary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	beneficiary, err := h.beneficiaryUsecase.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrBeneficiaryNotFound) {
			response.NotFound(w, msgNotFound)
			return
		}
		response.InternalServerError(w, msgListFailed)
		return
	}

	response.JSON(w, http.StatusOK, beneficiary)
}

// ExportBeneficiaries downloads the (optionally filtered) list as XLSX.
func (h *BeneficiaryHandler) ExportBeneficiaries(w http.ResponseWriter, r *http.Request) {
	items, err := h.beneficiaryUsecase.GetAll(r.Context(), searchTerm(r))
	if err != nil {
		response.InternalServerError(w, msgListFailed)
		return
	}

	data, err := h.exporter.Export(items)
	if err != nil {
		response.InternalServerError(w, msgExportFailed)
		return
	}

	filename := fmt.Sprintf("beneficiarios_%s.xlsx", time.Now().Format("20060102"))
	response.File(w, xlsxContentType, filename, data)
}

func (h *BeneficiaryHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*dto.BeneficiaryRequest, bool) {
	var req dto.BeneficiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, msgInvalidBody, err.Error())
		return nil, false
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}

	return &req, true
}

func (h *BeneficiaryHandler) writeSaveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrBeneficiaryNotFound):
		response.NotFound(w, msgNotFound)
	case errors.Is(err, usecase.ErrInvalidBeneficiary):
		response.Error(w, http.StatusBadRequest, msgInvalidBody, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, msgSaveFailed, err.Error())
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, msgInvalidID)
		return 0, false
	}
	return id, true
}

func searchTerm(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("busca"))
}
