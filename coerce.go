package dbfield

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// asInt64 accepts Go integer kinds, integral floats, decimal strings and
// json.Number.
func asInt64(v any) (int64, error) {
	switch vt := v.(type) {
	case int:
		return int64(vt), nil
	case int8:
		return int64(vt), nil
	case int16:
		return int64(vt), nil
	case int32:
		return int64(vt), nil
	case int64:
		return vt, nil
	case uint:
		return uintToInt64(uint64(vt))
	case uint8:
		return int64(vt), nil
	case uint16:
		return int64(vt), nil
	case uint32:
		return int64(vt), nil
	case uint64:
		return uintToInt64(vt)
	case float32:
		return floatToInt64(float64(vt))
	case float64:
		return floatToInt64(vt)
	case string:
		return strconv.ParseInt(strings.TrimSpace(vt), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(vt)), 10, 64)
	case json.Number:
		return jsonNumberToInt64(vt)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func uintToInt64(u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("value %d overflows int64", u)
	}
	return int64(u), nil
}

// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
const twoPow63 = 9223372036854775808.0

func floatToInt64(f float64) (int64, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("value %v is not integral", f)
	}
	if f >= twoPow63 || f < -twoPow63 {
		return 0, fmt.Errorf("value %v overflows int64", f)
	}
	return int64(f), nil
}

func jsonNumberToInt64(n json.Number) (int64, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return floatToInt64(f)
}

// intDefault keeps integer defaults and turns everything else into 0.
// Numeric strings and floats are not integers and also become 0.
func intDefault(v any) int64 {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := asInt64(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func asFloat64(v any) (float64, error) {
	switch vt := v.(type) {
	case float64:
		return vt, nil
	case float32:
		return float64(vt), nil
	case json.Number:
		return vt.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(vt), 64)
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(vt)), 64)
	default:
		n, err := asInt64(v)
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	}
}

func asBool(v any) (bool, error) {
	switch vt := v.(type) {
	case bool:
		return vt, nil
	case string:
		return parseBoolString(vt)
	case []byte:
		return parseBoolString(string(vt))
	default:
		n, err := asInt64(v)
		if err != nil {
			return false, err
		}
		return n != 0, nil
	}
}

func parseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on", "t", "y":
		return true, nil
	case "0", "false", "no", "off", "f", "n", "":
		return false, nil
	default:
		return false, fmt.Errorf("cannot parse %q as bool", s)
	}
}
