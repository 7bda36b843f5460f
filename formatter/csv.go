package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/theoremus-urban-solutions/trajectory-engine/trajectory"
)

// StartLocationsCSV renders a start-location table as CSV: id, lon, lat,
// then the requested attribute columns in the given order. Row order is
// preserved from the input.
func StartLocationsCSV(rows []trajectory.StartLocation, attrs []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"id", "lon", "lat"}, attrs...)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		rec := []string{
			row.ObjectID,
			fmt.Sprintf("%.6f", row.Position.Lon),
			fmt.Sprintf("%.6f", row.Position.Lat),
		}
		for _, name := range attrs {
			rec = append(rec, fmt.Sprint(row.Attrs[name]))
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
