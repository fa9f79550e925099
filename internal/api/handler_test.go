package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/config"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestRouter(limiter *RateLimiter) http.Handler {
	engine := calculation.NewCalculationEngineWithOptions(calculation.Options{Simulations: 100, Workers: 2})
	handler := NewCalculationHandler(engine, 5*time.Second, testLogger())
	handler.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return NewRouter(handler, limiter, testLogger())
}

func profileBody(t *testing.T, mutate func(map[string]any)) []byte {
	t.Helper()
	raw := config.ProfileToMap(config.ExampleProfile())
	if mutate != nil {
		mutate(raw)
	}
	body, err := json.Marshal(raw)
	require.NoError(t, err)
	return body
}

func post(router http.Handler, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCalculate_OK(t *testing.T) {
	router := newTestRouter(nil)

	w := post(router, "/api/retirement/calculate", profileBody(t, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "2026-05-01T12:00:00Z", resp["timestamp"])
	assert.NotEmpty(t, resp["requestId"])
	assert.Equal(t, resp["requestId"], w.Header().Get(RequestIDHeader))

	calc, ok := resp["calculations"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"projection", "retirementIncome", "portfolioLongevity", "riskMetrics",
		"monteCarlo", "sensitivityAnalysis", "compoundingComparison", "insights"} {
		assert.Contains(t, calc, key)
	}
	projection := calc["projection"].(map[string]any)
	assert.Contains(t, projection, "yearlyProjections")
}

func TestCalculate_SeedIsReproducible(t *testing.T) {
	router := newTestRouter(nil)
	body := profileBody(t, nil)

	decode := func(w *httptest.ResponseRecorder) CalculateResponse {
		require.Equal(t, http.StatusOK, w.Code)
		var resp CalculateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	a := decode(post(router, "/api/retirement/calculate?seed=42", body))
	b := decode(post(router, "/api/retirement/calculate?seed=42", body))
	assert.Equal(t, a.Calculations.MonteCarlo, b.Calculations.MonteCarlo)
	assert.Equal(t, int64(42), a.Calculations.MonteCarlo.Seed)
}

func TestCalculate_InvalidSeed(t *testing.T) {
	w := post(newTestRouter(nil), "/api/retirement/calculate?seed=abc", profileBody(t, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid seed")
}

func TestCalculate_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{invalid-json}`},
		{"array body", `[1,2,3]`},
		{"string body", `"profile"`},
		{"empty body", ``},
		{"trailing data", `{} {}`},
	}

	router := newTestRouter(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(router, "/api/retirement/calculate", []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Request body must be a JSON object", resp.Error)
		})
	}
}

func TestCalculate_SchemaViolations(t *testing.T) {
	body := profileBody(t, func(m map[string]any) {
		m["currentAge"] = 10
		m["expectedAnnualReturn"] = 0.9
		delete(m, "taxRate")
	})

	w := post(newTestRouter(nil), "/api/retirement/calculate", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error   string              `json:"error"`
		Details []config.FieldError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)

	fields := map[string]string{}
	for _, d := range resp.Details {
		fields[d.Field] = d.Constraint
	}
	assert.Equal(t, config.ConstraintMin, fields["currentAge"])
	assert.Equal(t, config.ConstraintMax, fields["expectedAnnualReturn"])
	assert.Equal(t, config.ConstraintRequired, fields["taxRate"])
}

func TestCalculate_AmountPastCapIs400(t *testing.T) {
	body := profileBody(t, func(m map[string]any) {
		m["currentSavings"] = 1e306
	})

	w := post(newTestRouter(nil), "/api/retirement/calculate", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error   string              `json:"error"`
		Details []config.FieldError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "currentSavings", resp.Details[0].Field)
	assert.Equal(t, config.ConstraintMax, resp.Details[0].Constraint)
}

func TestCalculate_LargestAcceptedProfileComputes(t *testing.T) {
	body := profileBody(t, func(m map[string]any) {
		for _, field := range []string{
			"currentSavings", "monthlyContribution", "socialSecurityIncome",
			"currentAnnualIncome", "healthcareCosts", "emergencyFund",
			"otherRetirementAccounts", "pensionIncome", "partTimeIncome",
		} {
			m[field] = 1e12
		}
		m["currentAge"] = 18
		m["retirementAge"] = 100
		m["lifeExpectancy"] = 120
		m["expectedAnnualReturn"] = 0.5
		m["riskTolerance"] = 3
		m["volatility"] = 0.5
		m["contributionIncreaseRate"] = 0.2
		m["compoundingFrequency"] = 365
	})

	w := post(newTestRouter(nil), "/api/retirement/calculate?seed=7", body)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestCalculate_RetirementBeforeCurrentAge(t *testing.T) {
	body := profileBody(t, func(m map[string]any) {
		m["currentAge"] = 50
		m["retirementAge"] = 40
	})

	w := post(newTestRouter(nil), "/api/retirement/calculate", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "calculations")
}

func TestCalculate_CrossFieldError(t *testing.T) {
	body := profileBody(t, func(m map[string]any) {
		m["currentAge"] = 60
		m["retirementAge"] = 55
	})

	w := post(newTestRouter(nil), "/api/retirement/calculate", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error   string             `json:"error"`
		Details []CrossFieldDetail `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid field combination", resp.Error)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "retirementAge", resp.Details[0].Field)
	assert.Equal(t, "currentAge", resp.Details[0].Related)
}

func TestCalculate_ComputationErrorIs500(t *testing.T) {
	engine := calculation.NewCalculationEngineWithOptions(calculation.Options{Simulations: 10})
	engine.Rules = []calculation.InsightRule{{
		Name:    "broken",
		Applies: func(calculation.Metrics) bool { panic("rule exploded") },
	}}
	router := NewRouter(NewCalculationHandler(engine, time.Second, testLogger()), nil, testLogger())

	w := post(router, "/api/retirement/calculate", profileBody(t, nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal calculation error", resp.Error)
	assert.Contains(t, resp.Details, "rule exploded")
}

func TestDocsAndHealth(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/retirement/calculate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "requiredFields")
	assert.Contains(t, w.Body.String(), "compoundingFrequency")

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestUnknownRouteAndMethod(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/retirement/calculate", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
