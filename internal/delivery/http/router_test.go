package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"beneficiary-registry/internal/delivery/dto"
	"beneficiary-registry/internal/delivery/http/handler"
	"beneficiary-registry/internal/delivery/http/middleware"
	"beneficiary-registry/internal/domain/entity"
	"beneficiary-registry/internal/service"
	"beneficiary-registry/pkg/validator"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubLookupUsecase struct{}

func (stubLookupUsecase) List(ctx context.Context, table entity.LookupTable) ([]dto.LookupResponse, error) {
	return []dto.LookupResponse{{ID: table.Name, Nome: table.Name}}, nil
}

type stubBeneficiaryUsecase struct {
	lastGetByID int64
}

func (s *stubBeneficiaryUsecase) Create(ctx context.Context, req *dto.BeneficiaryRequest) (int64, error) {
	return 1, nil
}

func (s *stubBeneficiaryUsecase) Update(ctx context.Context, id int64, req *dto.BeneficiaryRequest) (int64, error) {
	return id, nil
}

func (s *stubBeneficiaryUsecase) GetAll(ctx context.Context, search string) ([]dto.BeneficiaryListItem, error) {
	return []dto.BeneficiaryListItem{}, nil
}

func (s *stubBeneficiaryUsecase) GetByID(ctx context.Context, id int64) (*dto.BeneficiaryDetailResponse, error) {
	s.lastGetByID = id
	return &dto.BeneficiaryDetailResponse{ID: id}, nil
}

func setupRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock, *stubBeneficiaryUsecase) {
	sqlDB, sqlMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               logger.Discard,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	beneficiaries := &stubBeneficiaryUsecase{}
	router := NewRouter(
		db,
		handler.NewLookupHandler(stubLookupUsecase{}),
		handler.NewBeneficiaryHandler(beneficiaries, validator.NewValidator(), service.NewBeneficiaryExporter()),
		middleware.NewCORSMiddleware("*"),
		middleware.NewLoggingMiddleware(log),
		middleware.NewRateLimitMiddleware(100, 100, false),
	)
	return router.Setup(), sqlMock, beneficiaries
}

func TestRouter_HealthCheck(t *testing.T) {
	router, sqlMock, _ := setupRouter(t)
	sqlMock.ExpectPing()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_HealthCheckDatabaseDown(t *testing.T) {
	router, sqlMock, _ := setupRouter(t)
	sqlMock.ExpectPing().WillReturnError(errors.New("connection refused"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_LookupRoutes(t *testing.T) {
	router, _, _ := setupRouter(t)

	routes := map[string]string{
		"/api/tipos-beneficio":  "TIPO_BENEFICIO",
		"/api/cidades":          "MUNICIPIO",
		"/api/racas":            "RACA",
		"/api/religioes":        "RELIGIAO",
		"/api/hospitais":        "HOSPITAL",
		"/api/graus-parentesco": "GRAU_PARENTESCO",
	}
	for path, table := range routes {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), table, path)
	}
}

func TestRouter_ExportIsNotAnID(t *testing.T) {
	router, _, beneficiaries := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/beneficiarios/export", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, beneficiaries.lastGetByID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/beneficiarios/7", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), beneficiaries.lastGetByID)
}

func TestRouter_Preflight(t *testing.T) {
	router, _, _ := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/beneficiarios/7", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Metrics(t *testing.T) {
	router, _, _ := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_in_flight")
}
