package tools

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type createBookParams struct {
	BookData map[string]any `mapstructure:"book_data"`
}

type bookIDParams struct {
	BookID int `mapstructure:"book_id"`
}

type updateBookParams struct {
	BookID   int            `mapstructure:"book_id"`
	BookData map[string]any `mapstructure:"book_data"`
}

// decodeParams decodes the raw parameters of a call into out.
// Every name in required must be present with a non-null value.
// Parameters that out does not declare are ignored.
func decodeParams(params map[string]any, out any, required ...string) error {
	for _, name := range required {
		if v, ok := params[name]; !ok || v == nil {
			return fmt.Errorf("missing required parameter '%s'", name)
		}
	}

	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(integerHook, objectHook),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	if err := d.Decode(params); err != nil {
		return flattenDecodeError(err)
	}
	return nil
}

// integerHook coerces identifiers to int.
// JSON numbers must be integral and strings must parse as base 10 integers,
// anything else (booleans, fractions, words) is rejected instead of being silently truncated.
func integerHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}

	switch v := data.(type) {
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%v is not an integer", v)
		}
		// float64(math.MaxInt) rounds up to 2^63, which is itself out of range
		if v >= float64(math.MaxInt) || v < float64(math.MinInt) {
			return nil, fmt.Errorf("%v is out of range", v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("'%s' is not an integer", v)
		}
		return n, nil
	case bool:
		return nil, fmt.Errorf("expected an integer, got %t", v)
	default:
		return data, nil
	}
}

// objectHook only lets JSON objects into map fields.
// Weak typing would otherwise turn an empty list into an empty map and merge a list of objects.
func objectHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Map || data == nil {
		return data, nil
	}
	if reflect.TypeOf(data).Kind() != reflect.Map {
		return nil, fmt.Errorf("expected a JSON object, got %T", data)
	}
	return data, nil
}

// flattenDecodeError turns mapstructure's multi-line error report into a single line.
func flattenDecodeError(err error) error {
	merr, ok := err.(*mapstructure.Error)
	if !ok {
		return err
	}
	return fmt.Errorf("%s", strings.Join(merr.Errors, "; "))
}
