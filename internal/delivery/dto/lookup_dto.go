package dto

// LookupResponse is one option of a lookup list. ID is the numeric key for
// benefit types and the label itself for every other list.
type LookupResponse struct {
	ID   interface{} `json:"id"`
	Nome string      `json:"nome"`
}
