package validation

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/toolbox-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pairRequest struct {
	A string `param:"a" validate:"required,integer"`
	B string `param:"b" validate:"required,integer"`
}

func (r *pairRequest) Validate() error {
	return ValidateStruct(r)
}

type customRequest struct{}

func (r *customRequest) Validate() error {
	return CustomValidationErrors{{Field: "text", Message: "is not allowed"}}
}

func newContext(names []string, values []string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c
}

func TestIsInteger(t *testing.T) {
	for _, s := range []string{"0", "5", "-5", "+5", "007", "123456789012345678901234567890"} {
		assert.True(t, IsInteger(s), s)
	}
	for _, s := range []string{"", "abc", "1.5", "1e3", "--1", " 1", "0x10", "１"} {
		assert.False(t, IsInteger(s), s)
	}
}

func TestBindAndValidate_OK(t *testing.T) {
	req := &pairRequest{}
	err := BindAndValidate(newContext([]string{"a", "b"}, []string{"8", "-2"}), req)

	require.NoError(t, err)
	assert.Equal(t, "8", req.A)
	assert.Equal(t, "-2", req.B)
}

func TestBindAndValidate_NotInteger(t *testing.T) {
	err := BindAndValidate(newContext([]string{"a", "b"}, []string{"eight", "2"}), &pairRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "a", Error: "must be a valid integer"}}, httpErr.Errors)
}

func TestBindAndValidate_Missing(t *testing.T) {
	err := BindAndValidate(newContext([]string{"a", "b"}, []string{"1", ""}), &pairRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, []errs.FieldError{{Field: "b", Error: "is required"}}, httpErr.Errors)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	err := BindAndValidate(newContext(nil, nil), &customRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, []errs.FieldError{{Field: "text", Error: "is not allowed"}}, httpErr.Errors)
}

type textRequest struct {
	Text string `param:"text"`
}

func (r *textRequest) Validate() error {
	return ValidateStruct(r)
}

func newRawContext(target string, names []string, values []string) echo.Context {
	c := newContext(names, values)
	c.SetRequest(httptest.NewRequest(http.MethodGet, target, nil))
	return c
}

func TestBindAndValidate_DecodesRawPathParams(t *testing.T) {
	tests := []struct {
		target string
		raw    string
		want   string
	}{
		{"/echo/caf%c3%a9", "caf%c3%a9", "café"},
		{"/echo/a%2Fb", "a%2Fb", "a/b"},
		{"/echo/%2B5", "%2B5", "+5"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := newRawContext(tt.target, []string{"text"}, []string{tt.raw})
			require.NotEmpty(t, c.Request().URL.RawPath)

			req := &textRequest{}
			require.NoError(t, BindAndValidate(c, req))
			assert.Equal(t, tt.want, req.Text)
		})
	}
}

func TestBindAndValidate_DecodedIntegers(t *testing.T) {
	c := newRawContext("/add/%2B5/-2", []string{"a", "b"}, []string{"%2B5", "-2"})

	req := &pairRequest{}
	require.NoError(t, BindAndValidate(c, req))
	assert.Equal(t, "+5", req.A)
}

func TestBindAndValidate_CanonicalPathNotDecodedTwice(t *testing.T) {
	// "/echo/100%25" is canonical, so Echo already routed on the decoded path.
	c := newRawContext("/echo/100%25", []string{"text"}, []string{"100%"})
	require.Empty(t, c.Request().URL.RawPath)

	req := &textRequest{}
	require.NoError(t, BindAndValidate(c, req))
	assert.Equal(t, "100%", req.Text)
}

func TestBindAndValidate_InvalidEncoding(t *testing.T) {
	c := newContext([]string{"text"}, []string{"%zz"})
	c.Request().URL.RawPath = "/echo/%zz"

	err := BindAndValidate(c, &textRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.Equal(t, "text", httpErr.Errors[0].Field)
}
