package models

// Hop is one step of a route, with the fastest connection serving it.
type Hop struct {
	From       *Station
	To         *Station
	Connection *Connection
}

// Route is a shortest path between two stations.
type Route struct {
	Stations  []*Station
	Hops      []Hop
	TotalTime int
}

// RouteView is the serialised form of a Route.
type RouteView struct {
	Path   []string  `json:"path"`
	Hops   []HopView `json:"hops"`
	Time   int       `json:"time_minutes"`
	Target string    `json:"target_station"`
}

type HopView struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Line        string `json:"line"`
	TimeMinutes int    `json:"time_minutes"`
}

func (r Route) Names() []string {
	names := make([]string, len(r.Stations))
	for i, s := range r.Stations {
		names[i] = s.Name
	}
	return names
}

func (r Route) View() RouteView {
	view := RouteView{Path: r.Names(), Hops: make([]HopView, 0, len(r.Hops)), Time: r.TotalTime}
	if len(r.Stations) > 0 {
		view.Target = r.Stations[len(r.Stations)-1].Name
	}
	for _, h := range r.Hops {
		hv := HopView{From: h.From.Name, To: h.To.Name}
		if h.Connection != nil {
			hv.TimeMinutes = h.Connection.Time
			if h.Connection.Line != nil {
				hv.Line = h.Connection.Line.Name
			}
		}
		view.Hops = append(view.Hops, hv)
	}
	return view
}
