package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToNullableInt coerces a raw cell to an integer. Anything that is not a whole
// number yields nil.
func ToNullableInt(v any) *int {
	f := ToNullableFloat(v)
	if f == nil || *f != math.Trunc(*f) {
		return nil
	}
	i := int(*f)
	return &i
}

// ToNullableFloat coerces a raw cell to a float64. Unparsable values, NaN and
// infinities yield nil.
func ToNullableFloat(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return nil
		}
		f = p
	case []byte:
		return ToNullableFloat(string(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = p
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ToNullableString renders a raw cell as text; nil stays nil.
func ToNullableString(v any) *string {
	var s string
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		s = x
	case []byte:
		s = string(x)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = fmt.Sprint(x)
	}
	return &s
}

// ToString is ToNullableString with nil mapped to "".
func ToString(v any) string {
	if s := ToNullableString(v); s != nil {
		return *s
	}
	return ""
}
