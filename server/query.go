package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/trajectory-engine/geom"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// queryOptions are the per-request overrides of the engine defaults.
type queryOptions struct {
	minLength float64
	gap       time.Duration
	area      *geom.Polygon
	attrs     []string
}

func parseQuery(params map[string]string, defaultMinLength float64, defaultGapMinutes float64) (queryOptions, error) {
	opts := queryOptions{
		minLength: defaultMinLength,
		gap:       minutesToDuration(defaultGapMinutes),
	}
	if s, ok := params["minlength"]; ok && s != "" {
		v, err := parseNonNegativeFloat(s)
		if err != nil {
			return opts, &QueryError{Msg: "minlength must be a non-negative number."}
		}
		opts.minLength = v
	}
	if s, ok := params["gap"]; ok && s != "" {
		v, err := parseNonNegativeFloat(s)
		if err != nil {
			return opts, &QueryError{Msg: "gap must be a non-negative number of minutes."}
		}
		opts.gap = minutesToDuration(v)
	}
	if s, ok := params["bbox"]; ok && s != "" {
		area, err := parseBBox(s)
		if err != nil {
			return opts, err
		}
		opts.area = &area
	}
	if s, ok := params["attrs"]; ok && s != "" {
		for _, a := range strings.Split(s, ",") {
			a = strings.TrimSpace(a)
			if a != "" {
				opts.attrs = append(opts.attrs, a)
			}
		}
	}
	return opts, nil
}

// parseBBox reads "minLon,minLat,maxLon,maxLat" into a rectangular area.
func parseBBox(s string) (geom.Polygon, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Polygon{}, &QueryError{Msg: "bbox must be minLon,minLat,maxLon,maxLat."}
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Polygon{}, &QueryError{Msg: "bbox must be four numbers: minLon,minLat,maxLon,maxLat."}
		}
		vals[i] = v
	}
	if vals[0] >= vals[2] || vals[1] >= vals[3] {
		return geom.Polygon{}, &QueryError{Msg: "bbox min corner must be strictly below max corner."}
	}
	return geom.Rect(geom.Point{Lon: vals[0], Lat: vals[1]}, geom.Point{Lon: vals[2], Lat: vals[3]}), nil
}

func parseNonNegativeFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, &QueryError{Msg: "numeric parameter must be non-negative"}
	}
	return v, nil
}

func minutesToDuration(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
