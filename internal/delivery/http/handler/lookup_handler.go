package handler

import (
	"fmt"
	"net/http"

	"beneficiary-registry/internal/domain/entity"
	"beneficiary-registry/internal/usecase"
	"beneficiary-registry/pkg/response"
)

type LookupHandler struct {
	lookupUsecase usecase.LookupUsecase
}

func NewLookupHandler(lookupUsecase usecase.LookupUsecase) *LookupHandler {
	return &LookupHandler{
		lookupUsecase: lookupUsecase,
	}
}

// List serves the option list of one lookup table.
func (h *LookupHandler) List(table entity.LookupTable) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := h.lookupUsecase.List(r.Context(), table)
		if err != nil {
			response.InternalServerError(w, fmt.Sprintf("Erro ao buscar dados de %s.", table.Name))
			return
		}

		response.JSON(w, http.StatusOK, options)
	}
}
