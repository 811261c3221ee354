package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

// serve routes req through a mux so path values are populated the same way
// the real router does
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[map[string]string](t, w)["error"]
}

func referralFixture(status entities.ReferralStatus) *entities.Referral {
	return &entities.Referral{
		ID:                "ref-1",
		ServiceType:       "Mental Health Therapy",
		Urgency:           entities.UrgencyMedium,
		Counties:          []string{"Hennepin"},
		InsuranceRequired: []string{"Medicaid"},
		Status:            status,
	}
}

func providerFixture(id string, rating float64) *entities.Provider {
	return &entities.Provider{
		ID:                id,
		Name:              "Provider " + id,
		ServiceTypes:      []string{"Mental Health Therapy"},
		CountiesServed:    []string{"Hennepin"},
		InsuranceAccepted: []string{"Medicaid"},
		Capacity:          entities.CapacityHigh,
		AvailableSlots:    3,
		Rating:            rating,
		IsActive:          true,
	}
}
