// Package api exposes the network service over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"tubemap/internal/logging"
	"tubemap/internal/services"
)

type API struct {
	Service        *services.NetworkService
	Logger         *slog.Logger
	AllowedOrigins []string
}

func New(service *services.NetworkService, logger *slog.Logger, allowedOrigins []string) *API {
	return &API{
		Service:        service,
		Logger:         logging.OrDefault(logger),
		AllowedOrigins: allowedOrigins,
	}
}

// logger returns the request-scoped logger set up by requestLogging.
func (api *API) logger(r *http.Request) *slog.Logger {
	return logging.FromContext(r.Context())
}

// Handler builds the router wrapped in request logging, CORS and panic recovery.
func (api *API) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", api.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	routes := router.PathPrefix("/api").Subrouter()
	routes.HandleFunc("/stations", api.handleStations).Methods(http.MethodGet)
	routes.HandleFunc("/stations/{name}/neighbours", api.handleNeighbours).Methods(http.MethodGet)
	routes.HandleFunc("/route", api.handleRoute).Methods(http.MethodGet)
	routes.HandleFunc("/graph", api.handleGraph).Methods(http.MethodGet)
	routes.HandleFunc("/reachable", api.handleReachable).Methods(http.MethodGet)
	routes.HandleFunc("/reload", api.handleReload).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.notFound(w, r, "resource not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.writeJSON(w, r, http.StatusMethodNotAllowed, nil, "method not allowed")
	})

	origins := api.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Origin", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         86400,
	})
	return requestLogging(api.Logger)(corsHandler.Handler(api.recovery(router)))
}
