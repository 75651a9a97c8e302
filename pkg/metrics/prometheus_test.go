package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBeneficiaryWrite(t *testing.T) {
	before := testutil.ToFloat64(beneficiaryWrites.WithLabelValues(OperationCreate, "success"))
	RecordBeneficiaryWrite(OperationCreate, "success")
	after := testutil.ToFloat64(beneficiaryWrites.WithLabelValues(OperationCreate, "success"))

	assert.Equal(t, before+1, after)
}

func TestRecordLookupCache(t *testing.T) {
	hits := testutil.ToFloat64(lookupCacheRequests.WithLabelValues("RACA", "hit"))
	misses := testutil.ToFloat64(lookupCacheRequests.WithLabelValues("RACA", "miss"))

	RecordLookupCache("RACA", true)
	RecordLookupCache("RACA", false)
	RecordLookupCache("RACA", false)

	assert.Equal(t, hits+1, testutil.ToFloat64(lookupCacheRequests.WithLabelValues("RACA", "hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(lookupCacheRequests.WithLabelValues("RACA", "miss")))
}

func TestMiddleware_LabelsRouteTemplate(t *testing.T) {
	router := mux.NewRouter()
	router.Use(Middleware)
	router.HandleFunc("/api/beneficiarios/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/beneficiarios/{id}", "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/beneficiarios/42", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	RecordBeneficiaryWrite(OperationUpdate, "not_found")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "beneficiary_writes_total"))
}
