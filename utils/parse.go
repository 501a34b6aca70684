package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrParse marks text that is not a valid number for the field.
var ErrParse = errors.New("invalid number")

// ParseRoomID parses a positive room number.
func ParseRoomID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("room number %q: %w", raw, ErrParse)
	}
	return id, nil
}

// ParseCost parses a non-negative nightly rate.
func ParseCost(raw string) (float64, error) {
	cost, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0, fmt.Errorf("cost %q: %w", raw, ErrParse)
	}
	return cost, nil
}

// ParseFloor parses an optional floor; blank means "derive from room id" (0).
func ParseFloor(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	floor, err := strconv.Atoi(raw)
	if err != nil || floor <= 0 {
		return 0, fmt.Errorf("floor %q: %w", raw, ErrParse)
	}
	return floor, nil
}

// OptionalString returns nil for blank input.
func OptionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}
