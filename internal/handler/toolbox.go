package handler

import (
	"encoding/json"

	"github.com/deppfellow/toolbox-api/internal/errs"
	"github.com/deppfellow/toolbox-api/internal/model"
	"github.com/deppfellow/toolbox-api/internal/server"
	"github.com/deppfellow/toolbox-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DivideByZeroMessage is the detail returned for /divide/{a}/0.
const DivideByZeroMessage = "Cannot divide by zero"

// DivideByZeroCode is the X-Error-Code sent with DivideByZeroMessage.
const DivideByZeroCode = "DIVISION_BY_ZERO"

// ToolboxHandler serves the utility endpoints on top of service.ToolboxService.
type ToolboxHandler struct {
	Handler
	toolbox *service.ToolboxService
}

// NewToolboxHandler constructs a ToolboxHandler.
func NewToolboxHandler(s *server.Server, toolbox *service.ToolboxService) *ToolboxHandler {
	return &ToolboxHandler{
		Handler: NewHandler(s),
		toolbox: toolbox,
	}
}

func (h *ToolboxHandler) Root(c echo.Context, _ *model.EmptyRequest) (*model.MessageResponse, error) {
	return &model.MessageResponse{Message: h.toolbox.Welcome()}, nil
}

func (h *ToolboxHandler) Echo(c echo.Context, req *model.TextRequest) (*model.MessageResponse, error) {
	return &model.MessageResponse{Message: h.toolbox.Echo(req.Text)}, nil
}

func (h *ToolboxHandler) IsPalindrome(c echo.Context, req *model.TextRequest) (*model.PalindromeResponse, error) {
	return &model.PalindromeResponse{IsPalindrome: h.toolbox.IsPalindrome(req.Text)}, nil
}

func (h *ToolboxHandler) DaysUntilNewYear(c echo.Context, _ *model.EmptyRequest) (*model.DaysUntilNewYearResponse, error) {
	return &model.DaysUntilNewYearResponse{DaysUntilNewYear: h.toolbox.DaysUntilNewYear()}, nil
}

func (h *ToolboxHandler) CurrentDate(c echo.Context, _ *model.EmptyRequest) (*model.DateResponse, error) {
	return &model.DateResponse{Date: h.toolbox.CurrentDate()}, nil
}

func (h *ToolboxHandler) Square(c echo.Context, req *model.SquareRequest) (*model.ResultResponse, error) {
	n, err := service.ParseInteger(req.N)
	if err != nil {
		return nil, operandError("n")
	}

	return integerResult(h.toolbox.Square(n)), nil
}

func (h *ToolboxHandler) Add(c echo.Context, req *model.OperandsRequest) (*model.ResultResponse, error) {
	a, b, err := parseOperands(req)
	if err != nil {
		return nil, err
	}

	return integerResult(h.toolbox.Add(a, b)), nil
}

func (h *ToolboxHandler) Subtract(c echo.Context, req *model.OperandsRequest) (*model.ResultResponse, error) {
	a, b, err := parseOperands(req)
	if err != nil {
		return nil, err
	}

	return integerResult(h.toolbox.Subtract(a, b)), nil
}

func (h *ToolboxHandler) Multiply(c echo.Context, req *model.OperandsRequest) (*model.ResultResponse, error) {
	a, b, err := parseOperands(req)
	if err != nil {
		return nil, err
	}

	return integerResult(h.toolbox.Multiply(a, b)), nil
}

func (h *ToolboxHandler) Divide(c echo.Context, req *model.OperandsRequest) (*model.ResultResponse, error) {
	a, b, err := parseOperands(req)
	if err != nil {
		return nil, err
	}

	quotient, err := h.toolbox.Divide(a, b)
	switch {
	case errors.Is(err, service.ErrDivisionByZero):
		code := DivideByZeroCode
		return nil, errs.NewBadRequestError(DivideByZeroMessage, false, &code, nil, nil)
	case errors.Is(err, service.ErrResultOutOfRange):
		return nil, errs.NewBadRequestError("Division result too large for a float", false, nil, nil, nil)
	case err != nil:
		return nil, errors.Wrap(err, "divide")
	}

	return &model.ResultResponse{Result: json.Number(service.FormatFloat(quotient))}, nil
}

func integerResult(d decimal.Decimal) *model.ResultResponse {
	return &model.ResultResponse{Result: json.Number(service.FormatInteger(d))}
}

func parseOperands(req *model.OperandsRequest) (decimal.Decimal, decimal.Decimal, error) {
	a, err := service.ParseInteger(req.A)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, operandError("a")
	}

	b, err := service.ParseInteger(req.B)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, operandError("b")
	}

	return a, b, nil
}

// operandError reports a parameter that passed validation but still failed to
// parse; validation normally rejects these first.
func operandError(field string) error {
	return errs.NewUnprocessableEntityError("Validation failed", []errs.FieldError{
		{Field: field, Error: "must be a valid integer"},
	})
}
