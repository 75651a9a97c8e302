package converter

import (
	"beneficiary-registry/internal/delivery/dto"
	"beneficiary-registry/internal/domain/entity"
)

// LookupOptionsToResponses converts lookup rows to the {id, nome} options the
// form renders. Tables addressed by label use the label as id.
func LookupOptionsToResponses(table entity.LookupTable, options []entity.LookupOption) []dto.LookupResponse {
	responses := make([]dto.LookupResponse, 0, len(options))
	for _, option := range options {
		var id interface{} = option.Label
		if table.ExposeCode {
			id = option.Code
		}
		responses = append(responses, dto.LookupResponse{ID: id, Nome: option.Label})
	}
	return responses
}
