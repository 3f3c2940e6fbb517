package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tubemap/internal/models"
	"tubemap/internal/services"
)

func (api *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := api.Service.Status(r.Context())
	api.ok(w, r, status)
}

func (api *API) handleStations(w http.ResponseWriter, r *http.Request) {
	api.ok(w, r, api.Service.Stations(r.Context()))
}

func (api *API) handleRoute(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		api.badRequest(w, r, "query parameters 'from' and 'to' are required")
		return
	}

	route, ok := api.Service.ShortestPath(r.Context(), from, to)
	if !ok {
		api.notFound(w, r, "no route between '"+from+"' and '"+to+"'")
		return
	}
	api.ok(w, r, route.View())
}

type neighbourView struct {
	Station     *models.Station  `json:"station"`
	Connections []connectionView `json:"connections"`
}

type connectionView struct {
	Line        string `json:"line"`
	TimeMinutes int    `json:"time_minutes"`
}

func (api *API) handleNeighbours(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	neighbours, ok := api.Service.Neighbours(r.Context(), name)
	if !ok {
		api.notFound(w, r, "unknown station '"+name+"'")
		return
	}

	views := make([]neighbourView, 0, len(neighbours))
	for _, n := range neighbours {
		view := neighbourView{Station: n.Station, Connections: make([]connectionView, 0, len(n.Connections))}
		for _, c := range n.Connections {
			cv := connectionView{TimeMinutes: c.Time}
			if c.Line != nil {
				cv.Line = c.Line.Name
			}
			view.Connections = append(view.Connections, cv)
		}
		views = append(views, view)
	}
	api.ok(w, r, views)
}

func (api *API) handleGraph(w http.ResponseWriter, r *http.Request) {
	api.ok(w, r, api.Service.GraphData(r.Context()))
}

type reachabilityView struct {
	Reachable   []string `json:"reachable"`
	Unreachable []string `json:"unreachable"`
}

// handleReachable lists routes within ?minutes= of ?from=, or partitions the
// network by reachability when minutes is omitted.
func (api *API) handleReachable(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if from == "" {
		api.badRequest(w, r, "query parameter 'from' is required")
		return
	}

	raw := r.URL.Query().Get("minutes")
	if raw == "" {
		reachable, unreachable, ok := api.Service.Reachable(r.Context(), from)
		if !ok {
			api.notFound(w, r, "unknown station '"+from+"'")
			return
		}
		api.ok(w, r, reachabilityView{Reachable: reachable, Unreachable: unreachable})
		return
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes < 0 {
		api.badRequest(w, r, "query parameter 'minutes' must be a non-negative integer")
		return
	}

	routes, ok := api.Service.WithinMinutes(r.Context(), from, minutes)
	if !ok {
		api.notFound(w, r, "unknown station '"+from+"'")
		return
	}
	views := make([]models.RouteView, 0, len(routes))
	for _, route := range routes {
		views = append(views, route.View())
	}
	api.ok(w, r, views)
}

func (api *API) handleReload(w http.ResponseWriter, r *http.Request) {
	err := api.Service.ReloadFrom(r.Context(), nil)
	if errors.Is(err, services.ErrNoSource) {
		api.writeJSON(w, r, http.StatusConflict, nil, err.Error())
		return
	}
	if err != nil {
		api.serverError(w, r, err)
		return
	}
	api.ok(w, r, api.Service.Status(r.Context()))
}
