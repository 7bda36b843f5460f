package trajectory

import (
	"fmt"
	"strconv"
	"time"

	"github.com/theoremus-urban-solutions/trajectory-engine/geom"
)

// Fix is a single timestamped position observation of a moving object.
// Attrs carries every additional named value verbatim; one of the attributes
// (the builder's group key) identifies the object the fix belongs to.
type Fix struct {
	Time     time.Time
	Position geom.Point
	Attrs    map[string]any
}

// Attr returns the named attribute and whether it is present.
func (f Fix) Attr(name string) (any, bool) {
	v, ok := f.Attrs[name]
	return v, ok
}

// attrKey renders an attribute value as a canonical grouping key. Numeric
// values of equal magnitude map to the same key regardless of the parsed
// type, so an MMSI read as float64 groups with the same MMSI read as int.
func attrKey(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(t)
	}
}
