package http

import (
	"context"
	"net/http"
	"time"

	"beneficiary-registry/internal/delivery/http/handler"
	"beneficiary-registry/internal/delivery/http/middleware"
	"beneficiary-registry/internal/domain/entity"
	"beneficiary-registry/pkg/metrics"
	"beneficiary-registry/pkg/response"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Router struct {
	router              *mux.Router
	db                  *gorm.DB
	lookupHandler       *handler.LookupHandler
	beneficiaryHandler  *handler.BeneficiaryHandler
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

func NewRouter(
	db *gorm.DB,
	lookupHandler *handler.LookupHandler,
	beneficiaryHandler *handler.BeneficiaryHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		db:                  db,
		lookupHandler:       lookupHandler,
		beneficiaryHandler:  beneficiaryHandler,
		corsMiddleware:      corsMiddleware,
		loggingMiddleware:   loggingMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Lookup lists
	api.HandleFunc("/tipos-beneficio", r.lookupHandler.List(entity.LookupBenefitType)).Methods(http.MethodGet)
	api.HandleFunc("/cidades", r.lookupHandler.List(entity.LookupMunicipality)).Methods(http.MethodGet)
	api.HandleFunc("/racas", r.lookupHandler.List(entity.LookupRace)).Methods(http.MethodGet)
	api.HandleFunc("/religioes", r.lookupHandler.List(entity.LookupReligion)).Methods(http.MethodGet)
	api.HandleFunc("/hospitais", r.lookupHandler.List(entity.LookupHospital)).Methods(http.MethodGet)
	api.HandleFunc("/graus-parentesco", r.lookupHandler.List(entity.LookupKinshipDegree)).Methods(http.MethodGet)

	// Beneficiaries; export is registered before {id} so it is not read as an id.
	api.HandleFunc("/beneficiarios", r.beneficiaryHandler.GetAllBeneficiaries).Methods(http.MethodGet)
	api.HandleFunc("/beneficiarios", r.beneficiaryHandler.CreateBeneficiary).Methods(http.MethodPost)
	api.HandleFunc("/beneficiarios/export", r.beneficiaryHandler.ExportBeneficiaries).Methods(http.MethodGet)
	api.HandleFunc("/beneficiarios/{id}", r.beneficiaryHandler.GetBeneficiary).Methods(http.MethodGet)
	api.HandleFunc("/beneficiarios/{id}", r.beneficiaryHandler.UpdateBeneficiary).Methods(http.MethodPut)

	// Preflight requests never match a GET/POST/PUT route.
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {})

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(metrics.Middleware)
	r.router.Use(r.corsMiddleware.Handle)
	api.Use(r.rateLimitMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := r.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		response.Error(w, http.StatusServiceUnavailable, "database unavailable", err.Error())
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
