// Package router wires the HTTP API and the users page onto a chi router.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/userdir/internal/db/storage"
	"github.com/patric-chuzhbe/userdir/internal/gzippedhttp"
	"github.com/patric-chuzhbe/userdir/internal/logger"
	"github.com/patric-chuzhbe/userdir/internal/models"
	"github.com/patric-chuzhbe/userdir/internal/validation"
)

const (
	failedToSaveMessage  = "Failed to save users"
	internalErrorMessage = "Internal server error"
)

type userService interface {
	ListUsers(ctx context.Context) []models.User
	CreateUser(ctx context.Context, payload models.NewUser) (models.User, error)
	Ping(ctx context.Context) error
	GetInternalStats(ctx context.Context) models.InternalStatsResponse
}

type subnetGuard interface {
	Middleware(next http.Handler) http.Handler
}

type pageRoutes interface {
	Register(router chi.Router)
}

// Router holds the API handlers.
type Router struct {
	service userService
}

type initOptions struct {
	createLimiter  func(http.Handler) http.Handler
	allowedOrigins []string
	enableGzip     bool
	pages          pageRoutes
}

type InitOption func(*initOptions)

// WithCreateLimiter throttles POST /api/users with the given middleware.
func WithCreateLimiter(limiter func(http.Handler) http.Handler) InitOption {
	return func(options *initOptions) {
		options.createLimiter = limiter
	}
}

// WithAllowedOrigins enables CORS for the API when origins is not empty.
func WithAllowedOrigins(origins []string) InitOption {
	return func(options *initOptions) {
		options.allowedOrigins = origins
	}
}

func WithGzip(enable bool) InitOption {
	return func(options *initOptions) {
		options.enableGzip = enable
	}
}

// WithPages mounts the server-rendered users page.
func WithPages(pages pageRoutes) InitOption {
	return func(options *initOptions) {
		options.pages = pages
	}
}

func writeJSON(response http.ResponseWriter, status int, body interface{}) {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(status)

	enc := json.NewEncoder(response)
	if err := enc.Encode(body); err != nil {
		logger.Log.Debugln("error encoding response", zap.Error(err))
	}
}

func writeError(response http.ResponseWriter, status int, message string) {
	writeJSON(response, status, models.ErrorResponse{Error: message})
}

// GetApiusers returns the whole collection, "[]" when it is empty.
func (router *Router) GetApiusers(response http.ResponseWriter, request *http.Request) {
	users := router.service.ListUsers(request.Context())
	if users == nil {
		users = []models.User{}
	}

	writeJSON(response, http.StatusOK, users)
}

// PostApiusers creates a user from the JSON body.
func (router *Router) PostApiusers(response http.ResponseWriter, request *http.Request) {
	var payload models.NewUser

	dec := json.NewDecoder(request.Body)
	if err := dec.Decode(&payload); err != nil {
		logger.Log.Debugln("cannot decode request JSON body", zap.Error(err))
		writeError(response, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	created, err := router.service.CreateUser(request.Context(), payload)
	if err != nil {
		var vErr *validation.Error
		switch {
		case errors.As(err, &vErr):
			writeError(response, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, storage.ErrPersistence):
			logger.Log.Errorw("Error saving users", zap.Error(err))
			writeError(response, http.StatusInternalServerError, failedToSaveMessage)
		default:
			logger.Log.Errorw("Error creating user", zap.Error(err))
			writeError(response, http.StatusInternalServerError, internalErrorMessage)
		}
		return
	}

	writeJSON(response, http.StatusCreated, created)
}

func (router *Router) GetPing(response http.ResponseWriter, request *http.Request) {
	if err := router.service.Ping(request.Context()); err != nil {
		logger.Log.Errorw("Storage ping failed", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	response.WriteHeader(http.StatusOK)
}

// GetApiinternalstats reports the collection size to trusted clients.
func (router *Router) GetApiinternalstats(response http.ResponseWriter, request *http.Request) {
	writeJSON(response, http.StatusOK, router.service.GetInternalStats(request.Context()))
}

func passThrough(next http.Handler) http.Handler {
	return next
}

// New builds the chi router serving the API, the health check, the
// internal stats behind guard and, optionally, the users page.
func New(service userService, guard subnetGuard, optionsProto ...InitOption) *chi.Mux {
	options := &initOptions{
		createLimiter: passThrough,
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	myRouter := &Router{
		service: service,
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RealIP,
		logger.WithLoggingHTTPMiddleware,
		middleware.Recoverer,
	)
	if options.enableGzip {
		router.Use(
			gzippedhttp.DecompressRequest,
			gzippedhttp.CompressResponse,
		)
	}

	router.Get(`/ping`, myRouter.GetPing)

	router.Group(func(api chi.Router) {
		if len(options.allowedOrigins) > 0 {
			api.Use(cors.New(cors.Options{
				AllowedOrigins: options.allowedOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodPost},
				AllowedHeaders: []string{"Content-Type", "Content-Encoding", logger.RequestIDHeader},
				ExposedHeaders: []string{logger.RequestIDHeader},
			}).Handler)
		}

		api.Get(`/api/users`, myRouter.GetApiusers)
		api.With(options.createLimiter).Post(`/api/users`, myRouter.PostApiusers)
		// Preflight requests need a route to reach the cors middleware.
		api.Options(`/api/users`, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})

	router.With(guard.Middleware).Get(`/api/internal/stats`, myRouter.GetApiinternalstats)

	if options.pages != nil {
		options.pages.Register(router)
	}

	return router
}
