package models

import (
	"fmt"

	"github.com/etherdesk/etherwm/internal/types"
)

// ParamError is returned by the param helpers; the daemon maps it to
// CodeInvalidParams.
type ParamError struct {
	Key    string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("param %q %s", e.Key, e.Reason)
}

// GetString returns a required string param
func GetString(params map[string]interface{}, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return "", &ParamError{Key: key, Reason: "is required"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ParamError{Key: key, Reason: "must be a string"}
	}
	return s, nil
}

// GetOptionalString returns a string param or fallback when absent
func GetOptionalString(params map[string]interface{}, key, fallback string) (string, error) {
	if v, ok := params[key]; !ok || v == nil {
		return fallback, nil
	}
	return GetString(params, key)
}

// GetFloat returns a required numeric param
func GetFloat(params map[string]interface{}, key string) (float64, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return 0, &ParamError{Key: key, Reason: "is required"}
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, &ParamError{Key: key, Reason: "must be a number"}
	}
}

// GetOptionalInt returns an integer param or fallback when absent
func GetOptionalInt(params map[string]interface{}, key string, fallback int) (int, error) {
	if v, ok := params[key]; !ok || v == nil {
		return fallback, nil
	}
	f, err := GetFloat(params, key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// GetOptionalBool returns a bool param or fallback when absent
func GetOptionalBool(params map[string]interface{}, key string, fallback bool) (bool, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return fallback, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, &ParamError{Key: key, Reason: "must be a boolean"}
	}
	return b, nil
}

// GetPoint reads the x and y params as a point
func GetPoint(params map[string]interface{}) (types.Point, error) {
	x, err := GetFloat(params, "x")
	if err != nil {
		return types.Point{}, err
	}
	y, err := GetFloat(params, "y")
	if err != nil {
		return types.Point{}, err
	}
	return types.Point{X: x, Y: y}, nil
}
