package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/theoremus-urban-solutions/trajectory-engine/formatter"
	"github.com/theoremus-urban-solutions/trajectory-engine/gtfsrt"
	"github.com/theoremus-urban-solutions/trajectory-engine/trajectory"
)

func queryParams(r *http.Request) map[string]string {
	params := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}

func requestOptions(r *http.Request) (queryOptions, error) {
	return parseQuery(queryParams(r), state.Cfg.Engine.MinLengthM, state.Cfg.Engine.MaxGapMinutes)
}

// applyFilters narrows a collection by the request's minimum length and
// area. Length filtering composes the public per-trajectory predicates.
func applyFilters(c *trajectory.Collection, opts queryOptions) *trajectory.Collection {
	if opts.minLength > 0 {
		c = c.Filter(func(t *trajectory.Trajectory) bool {
			length, err := t.Length()
			return err == nil && length >= opts.minLength
		})
	}
	if opts.area != nil {
		c = c.Intersecting(*opts.area)
	}
	return c
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	s := state.Collection.Summary()
	resp := map[string]any{
		"status":       "ok",
		"trajectories": s.Count,
		"fixes":        s.TotalFixes,
	}
	if state.Live != nil {
		resp["live_fixes"] = state.Live.Size()
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func handleTrajectoriesGeoJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	opts, err := requestOptions(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload("trajectories", err.Error()))
		return
	}
	buf, err := formatter.TrajectoriesGeoJSON(applyFilters(state.Collection, opts))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(buildErrorPayload("trajectories", err.Error()))
		return
	}
	_, _ = w.Write(buf)
}

func handleTripsGeoJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	opts, err := requestOptions(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload("trips", err.Error()))
		return
	}
	trips := state.Collection.SplitByObservationGap(opts.gap)
	buf, err := formatter.TrajectoriesGeoJSON(applyFilters(trips, opts))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(buildErrorPayload("trips", err.Error()))
		return
	}
	_, _ = w.Write(buf)
}

func startLocationRows(r *http.Request) ([]trajectory.StartLocation, queryOptions, error) {
	opts, err := requestOptions(r)
	if err != nil {
		return nil, opts, err
	}
	rows, err := applyFilters(state.Collection, opts).StartLocations(opts.attrs)
	return rows, opts, err
}

func handleStartLocationsJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	rows, _, err := startLocationRows(r)
	if err != nil {
		w.WriteHeader(startLocationStatus(err))
		_, _ = w.Write(buildErrorPayload("startLocations", err.Error()))
		return
	}
	buf, err := formatter.StartLocationsGeoJSON(rows)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(buildErrorPayload("startLocations", err.Error()))
		return
	}
	_, _ = w.Write(buf)
}

func handleStartLocationsCSV(w http.ResponseWriter, r *http.Request) {
	rows, opts, err := startLocationRows(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(startLocationStatus(err))
		_, _ = w.Write(buildErrorPayload("startLocations", err.Error()))
		return
	}
	buf, err := formatter.StartLocationsCSV(rows, opts.attrs)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(buildErrorPayload("startLocations", err.Error()))
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	_, _ = w.Write(buf)
}

func handleLiveTrajectoriesGeoJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	if state.Live == nil {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write(buildErrorPayload("liveTrajectories", "no GTFS-RT feed configured"))
		return
	}
	opts, err := requestOptions(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload("liveTrajectories", err.Error()))
		return
	}
	fixes := state.Live.Fixes()
	if len(fixes) == 0 {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
		return
	}
	coll, err := trajectory.Build(fixes, gtfsrt.VehicleIDAttribute, 0)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(buildErrorPayload("liveTrajectories", err.Error()))
		return
	}
	buf, err := formatter.TrajectoriesGeoJSON(applyFilters(coll, opts))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(buildErrorPayload("liveTrajectories", err.Error()))
		return
	}
	_, _ = w.Write(buf)
}

// startLocationStatus maps engine errors on the start-location path to
// HTTP statuses: a bad attribute request is the caller's fault.
func startLocationStatus(err error) int {
	var qe *QueryError
	if errors.As(err, &qe) || errors.Is(err, trajectory.ErrUnknownAttribute) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
