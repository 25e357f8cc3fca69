// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Integer lists the integer kinds accepted by the converters.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// bounds reports whether v is negative and, if not, its unsigned magnitude.
func bounds[T Integer](v T) (negative bool, magnitude uint64, err error) {
	switch value := any(v).(type) {
	case int:
		return value < 0, uint64(value), nil
	case int32:
		return value < 0, uint64(value), nil
	case int64:
		return value < 0, uint64(value), nil
	case uint:
		return false, uint64(value), nil
	case uint32:
		return false, uint64(value), nil
	case uint64:
		return false, value, nil
	default:
		return false, 0, fmt.Errorf("unsupported type %T", v)
	}
}

// Uint32 converts signed or unsigned integers to uint32 with range validation.
func Uint32[T Integer](v T) (uint32, error) {
	negative, magnitude, err := bounds(v)
	if err != nil {
		return 0, err
	}
	if negative || magnitude > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(magnitude), nil
}

// Uint64 converts signed or unsigned integers to uint64 while guarding against negatives.
func Uint64[T Integer](v T) (uint64, error) {
	negative, magnitude, err := bounds(v)
	if err != nil {
		return 0, err
	}
	if negative {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return magnitude, nil
}

// Int converts an integer to a non-negative int, as used for lengths and counts.
func Int[T Integer](v T) (int, error) {
	negative, magnitude, err := bounds(v)
	if err != nil {
		return 0, err
	}
	if negative || magnitude > math.MaxInt {
		return 0, fmt.Errorf("value %d out of int range", v)
	}
	return int(magnitude), nil
}
