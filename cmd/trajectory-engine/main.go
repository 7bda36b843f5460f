package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/trajectory-engine/ais"
	"github.com/theoremus-urban-solutions/trajectory-engine/config"
	"github.com/theoremus-urban-solutions/trajectory-engine/formatter"
	"github.com/theoremus-urban-solutions/trajectory-engine/geom"
	"github.com/theoremus-urban-solutions/trajectory-engine/gtfsrt"
	"github.com/theoremus-urban-solutions/trajectory-engine/internal"
	"github.com/theoremus-urban-solutions/trajectory-engine/server"
	"github.com/theoremus-urban-solutions/trajectory-engine/trajectory"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|serve")
	configPath := flag.String("config", "", "config file path (overrides default lookup)")
	csvPath := flag.String("csv", "", "AIS CSV file (overrides config)")
	idAttr := flag.String("id", "", "grouping attribute (overrides config)")
	minLength := flag.Float64("minlength", -1, "minimum trajectory length in meters (overrides config)")
	gap := flag.Float64("gap", -1, "observation gap in minutes for -call=trips (overrides config)")
	bbox := flag.String("bbox", "", "minLon,minLat,maxLon,maxLat area filter")
	call := flag.String("call", "trajectories", "trajectories|trips|starts")
	format := flag.String("format", "geojson", "geojson|csv (csv only for -call=starts)")
	attrs := flag.String("attrs", "", "comma-separated attributes to carry on start locations")
	flag.Parse()

	internal.InitLogging()
	if *configPath != "" {
		if err := config.LoadAppConfigFile(*configPath); err != nil {
			panic(err)
		}
	} else if err := config.LoadAppConfig(); err != nil {
		panic(err)
	}
	cfg := config.Config

	if *csvPath != "" {
		cfg.AIS.CSVPath = *csvPath
	}
	if *idAttr != "" {
		cfg.Engine.IDAttribute = *idAttr
	}
	if *minLength >= 0 {
		cfg.Engine.MinLengthM = *minLength
	}
	if *gap >= 0 {
		cfg.Engine.MaxGapMinutes = *gap
	}

	switch *mode {
	case "oneshot":
		oneshot(cfg, *call, *format, *bbox, splitAttrs(*attrs))
	case "serve":
		serve(cfg)
	default:
		panic("unknown mode")
	}
}

func oneshot(cfg config.AppConfig, call, format, bbox string, attrs []string) {
	if cfg.AIS.CSVPath == "" {
		panic("no AIS CSV configured; pass -csv or set ais.csv_path")
	}
	fixes, err := ais.ReadFile(cfg.AIS.CSVPath, schemaFromConfig(cfg.AIS))
	if err != nil {
		panic(err)
	}
	coll, err := trajectory.Build(fixes, cfg.Engine.IDAttribute, cfg.Engine.MinLengthM)
	if err != nil {
		panic(err)
	}
	if call == "trips" {
		maxGap := time.Duration(cfg.Engine.MaxGapMinutes * float64(time.Minute))
		coll = coll.SplitByObservationGap(maxGap)
	}
	if bbox != "" {
		area, err := parseBBox(bbox)
		if err != nil {
			panic(err)
		}
		coll = coll.Intersecting(area)
	}

	var buf []byte
	switch call {
	case "trajectories", "trips":
		if format != "geojson" {
			panic("only -format=geojson is supported for " + call)
		}
		buf, err = formatter.TrajectoriesGeoJSON(coll)
	case "starts":
		var rows []trajectory.StartLocation
		rows, err = coll.StartLocations(attrs)
		if err == nil {
			if format == "csv" {
				buf, err = formatter.StartLocationsCSV(rows, attrs)
			} else {
				buf, err = formatter.StartLocationsGeoJSON(rows)
			}
		}
	default:
		panic("unknown call: " + call)
	}
	if err != nil {
		panic(err)
	}
	fmt.Println(string(buf))
}

func serve(cfg config.AppConfig) {
	st := &server.State{Cfg: cfg, Collection: trajectory.NewCollection(nil)}
	if cfg.AIS.CSVPath != "" {
		fixes, err := ais.ReadFile(cfg.AIS.CSVPath, schemaFromConfig(cfg.AIS))
		if err != nil {
			panic(err)
		}
		coll, err := trajectory.Build(fixes, cfg.Engine.IDAttribute, cfg.Engine.MinLengthM)
		if err != nil {
			panic(err)
		}
		st.Collection = coll
		log.Printf("loaded %d trajectories from %s", coll.Len(), cfg.AIS.CSVPath)
	}
	if cfg.GTFSRT.VehiclePositionsURL != "" {
		st.Live = gtfsrt.NewAccumulator(cfg.GTFSRT.VehiclePositionsURL)
		go pollFeed(st.Live, cfg.GTFSRT.ReadIntervalMS)
	}
	server.StartServer(st)
	server.HandleGracefulShutdown()
}

func pollFeed(acc *gtfsrt.Accumulator, intervalMS int) {
	if intervalMS <= 0 {
		intervalMS = 30000
	}
	ticker := time.NewTicker(time.Duration(intervalMS) * time.Millisecond)
	defer ticker.Stop()
	for {
		added, err := acc.Refresh()
		if err != nil {
			log.Printf("feed refresh error: %v", err)
		} else if added > 0 {
			log.Printf("accumulated %d new fixes (%d total)", added, acc.Size())
		}
		<-ticker.C
	}
}

func schemaFromConfig(c config.AISConfig) ais.Schema {
	s := ais.DefaultSchema()
	if c.TimeColumn != "" {
		s.TimeColumn = c.TimeColumn
	}
	if c.LatColumn != "" {
		s.LatColumn = c.LatColumn
	}
	if c.LonColumn != "" {
		s.LonColumn = c.LonColumn
	}
	return s
}

func splitAttrs(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func parseBBox(s string) (geom.Polygon, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Polygon{}, fmt.Errorf("bbox must be minLon,minLat,maxLon,maxLat")
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Polygon{}, fmt.Errorf("bbox: %w", err)
		}
		vals[i] = v
	}
	if vals[0] >= vals[2] || vals[1] >= vals[3] {
		return geom.Polygon{}, fmt.Errorf("bbox min corner must be below max corner")
	}
	return geom.Rect(geom.Point{Lon: vals[0], Lat: vals[1]}, geom.Point{Lon: vals[2], Lat: vals[3]}), nil
}
