package model

import (
	"encoding/json"

	"github.com/deppfellow/toolbox-api/internal/validation"
)

// EmptyRequest is bound by routes that take no parameters.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// TextRequest carries a free-form string path segment.
type TextRequest struct {
	Text string `param:"text"`
}

func (r *TextRequest) Validate() error {
	return validation.ValidateStruct(r)
}

// SquareRequest carries the single integer operand of /square/{n}.
type SquareRequest struct {
	N string `param:"n" validate:"required,integer"`
}

func (r *SquareRequest) Validate() error {
	return validation.ValidateStruct(r)
}

// OperandsRequest carries the two integer operands of the binary arithmetic routes.
type OperandsRequest struct {
	A string `param:"a" validate:"required,integer"`
	B string `param:"b" validate:"required,integer"`
}

func (r *OperandsRequest) Validate() error {
	return validation.ValidateStruct(r)
}

// MessageResponse is returned by / and /echo/{text}.
type MessageResponse struct {
	Message string `json:"message"`
}

// PalindromeResponse is returned by /is-palindrome/{text}.
type PalindromeResponse struct {
	IsPalindrome bool `json:"is_palindrome"`
}

// ResultResponse is returned by the arithmetic routes.
//
// Result is a pre-rendered JSON number so integers stay exact at any size
// and floats keep their fractional part ("4.0").
type ResultResponse struct {
	Result json.Number `json:"result"`
}

// DaysUntilNewYearResponse is returned by /days-until-new-year.
type DaysUntilNewYearResponse struct {
	DaysUntilNewYear int `json:"days_until_new_year"`
}

// DateResponse is returned by /current-date.
type DateResponse struct {
	Date string `json:"date"`
}
