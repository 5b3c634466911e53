package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/toolbox-api/internal/config"
	"github.com/deppfellow/toolbox-api/internal/handler"
	"github.com/deppfellow/toolbox-api/internal/middleware"
	"github.com/deppfellow/toolbox-api/internal/server"
	"github.com/deppfellow/toolbox-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, mutate func(cfg *config.Config)) (*echo.Echo, *server.Server) {
	t.Helper()

	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)

	h := handler.NewHandlers(s, service.NewServices(s))
	return NewRouter(s, h), s
}

func doGet(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestToolboxRoutes(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	tests := []struct {
		name   string
		target string
		status int
		body   string
	}{
		{"root", "/", http.StatusOK, `{"message": "Welcome to the Toolbox API!"}`},
		{"echo", "/echo/hello", http.StatusOK, `{"message": "hello"}`},
		{"palindrome", "/is-palindrome/racecar", http.StatusOK, `{"is_palindrome": true}`},
		{"not palindrome", "/is-palindrome/hello", http.StatusOK, `{"is_palindrome": false}`},
		{"palindrome is case sensitive", "/is-palindrome/Racecar", http.StatusOK, `{"is_palindrome": false}`},
		{"square", "/square/5", http.StatusOK, `{"result": 25}`},
		{"square negative", "/square/-4", http.StatusOK, `{"result": 16}`},
		{"multiply", "/multiply/3/4", http.StatusOK, `{"result": 12}`},
		{"subtract", "/subtract/10/4", http.StatusOK, `{"result": 6}`},
		{"subtract below zero", "/subtract/4/10", http.StatusOK, `{"result": -6}`},
		{"add", "/add/2/3", http.StatusOK, `{"result": 5}`},
		{"add signed", "/add/-3/+5", http.StatusOK, `{"result": 2}`},
		{"divide", "/divide/8/2", http.StatusOK, `{"result": 4.0}`},
		{"divide fraction", "/divide/1/4", http.StatusOK, `{"result": 0.25}`},
		{"divide by zero", "/divide/8/0", http.StatusBadRequest, `{"detail": "Cannot divide by zero"}`},

		{"echo encoded space", "/echo/hello%20world", http.StatusOK, `{"message": "hello world"}`},
		{"echo lowercase hex", "/echo/caf%c3%a9", http.StatusOK, `{"message": "café"}`},
		{"echo uppercase hex", "/echo/caf%C3%A9", http.StatusOK, `{"message": "café"}`},
		{"echo encoded slash", "/echo/a%2Fb", http.StatusOK, `{"message": "a/b"}`},
		{"echo encoded percent", "/echo/100%25", http.StatusOK, `{"message": "100%"}`},
		{"palindrome encoded", "/is-palindrome/%c3%a9a%C3%A9", http.StatusOK, `{"is_palindrome": true}`},
		{"square encoded plus", "/square/%2B5", http.StatusOK, `{"result": 25}`},
		{"add encoded signs", "/add/%2B5/%2D2", http.StatusOK, `{"result": 3}`},

		{"divide tiny quotient", "/divide/1/1" + strings.Repeat("0", 50), http.StatusOK, `{"result": 1e-50}`},
		{"divide repeating tiny quotient", "/divide/1/3" + strings.Repeat("0", 30), http.StatusOK, `{"result": 3.333333333333333e-31}`},
		{"divide huge quotient", "/divide/1" + strings.Repeat("0", 20) + "/1", http.StatusOK, `{"result": 1e+20}`},
		{"divide beyond float range", "/divide/1" + strings.Repeat("0", 400) + "/1", http.StatusBadRequest, `{"detail": "Division result too large for a float"}`},

		{"trailing slash", "/add/1/2/", http.StatusOK, `{"result": 3}`},
		{"trailing slash after encoded param", "/echo/a%2Fb/", http.StatusOK, `{"message": "a/b"}`},
		{"encoded trailing slash is kept", "/echo/a%2F", http.StatusOK, `{"message": "a/"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(e, tt.target)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
			assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
		})
	}
}

func TestIntegerResultsAreJSONNumbers(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rec := doGet(e, "/multiply/99999999999999999999/2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"result":199999999999999999998`)

	rec = doGet(e, "/divide/8/2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"result":4.0`)
}

func TestTrailingSlashRoot(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rec := doGet(e, "/")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doGet(e, "/echo/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDivideByZero_ErrorCodeHeader(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rec := doGet(e, "/divide/0/0")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, handler.DivideByZeroCode, rec.Header().Get(middleware.ErrorCodeHeader))
	assert.JSONEq(t, `{"detail": "`+handler.DivideByZeroMessage+`"}`, rec.Body.String())
}

func TestValidationErrors(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	tests := []struct {
		name   string
		target string
		field  string
	}{
		{"square", "/square/abc", "n"},
		{"square float", "/square/2.5", "n"},
		{"divide numerator", "/divide/x/2", "a"},
		{"divide denominator", "/divide/2/y", "b"},
		{"multiply", "/multiply/1/two", "b"},
		{"subtract", "/subtract/one/1", "a"},
		{"add", "/add/1e3/1", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(e, tt.target)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var body struct {
				Detail string `json:"detail"`
				Errors []struct {
					Field string `json:"field"`
					Error string `json:"error"`
				} `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

			assert.NotEmpty(t, body.Detail)
			require.NotEmpty(t, body.Errors)
			assert.Equal(t, tt.field, body.Errors[0].Field)
		})
	}
}

func TestCalendarRoutes(t *testing.T) {
	e, s := newTestRouter(t, func(cfg *config.Config) {
		cfg.Primary.Timezone = "UTC"
	})

	now := time.Now().In(s.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	newYear := time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	expectedDays := int(newYear.Sub(today).Hours() / 24)

	rec := doGet(e, "/days-until-new-year")
	require.Equal(t, http.StatusOK, rec.Code)

	var days map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &days))
	assert.Equal(t, expectedDays, days["days_until_new_year"])
	assert.GreaterOrEqual(t, days["days_until_new_year"], 1)
	assert.LessOrEqual(t, days["days_until_new_year"], 366)

	rec = doGet(e, "/current-date")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date": "`+now.Format(service.DateLayout)+`"}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rec := doGet(e, "/does-not-exist")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail": "Route not found"}`, rec.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rec := doGet(e, "/")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestSystemRoutes(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	t.Run("status", func(t *testing.T) {
		rec := doGet(e, "/status")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "development", body["environment"])
	})

	t.Run("docs", func(t *testing.T) {
		rec := doGet(e, "/docs")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	})

	t.Run("openapi document", func(t *testing.T) {
		rec := doGet(e, "/static/openapi.json")
		require.Equal(t, http.StatusOK, rec.Code)

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Contains(t, doc, "paths")
	})
}

func TestRateLimit(t *testing.T) {
	e, _ := newTestRouter(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 0.01
		cfg.Server.RateLimitBurst = 1
	})

	rec := doGet(e, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doGet(e, "/")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestConcurrentRequests(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			a := strconv.Itoa(n % 10)
			rec := doGet(e, "/add/"+a+"/"+a)

			var body map[string]int
			if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)) {
				assert.Equal(t, 2*(n%10), body["result"])
			}
		}(i)
	}
	wg.Wait()
}
