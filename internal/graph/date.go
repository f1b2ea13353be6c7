package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Date is the Date scalar. It is written as epoch milliseconds and read from
// an integer, a float, a numeric string or an RFC 3339 string. Inline integer
// literals wider than 32 bits arrive as numeric strings (see quoteWideInts).
type Date struct {
	time.Time
}

func (Date) ImplementsGraphQLType(name string) bool {
	return name == "Date"
}

func (d *Date) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case int32:
		d.Time = time.UnixMilli(int64(v)).UTC()
	case int64:
		d.Time = time.UnixMilli(v).UTC()
	case int:
		d.Time = time.UnixMilli(int64(v)).UTC()
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid Date %v", v)
		}
		d.Time = time.UnixMilli(int64(v)).UTC()
	case json.Number:
		ms, err := v.Int64()
		if err != nil {
			return fmt.Errorf("invalid Date %q: %w", v.String(), err)
		}
		d.Time = time.UnixMilli(ms).UTC()
	case string:
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			d.Time = time.UnixMilli(ms).UTC()
			return nil
		}
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return fmt.Errorf("invalid Date %q: want epoch milliseconds or RFC 3339", v)
		}
		d.Time = t.UTC()
	default:
		return fmt.Errorf("wrong type for Date: %T", input)
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, d.UnixMilli(), 10), nil
}
