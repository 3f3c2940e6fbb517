// models/zone.go
package models

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidZone = errors.New("invalid zone")

// ParseZone converts a zone as written in network data into the set of zones
// a station belongs to. A fractional zone such as "2.5" straddles two zones
// and yields {2, 3}.
func ParseZone(raw string) ([]int, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZone, raw)
	}

	whole := math.Floor(value)
	if whole == value {
		return []int{int(whole)}, nil
	}
	return []int{int(whole), int(whole) + 1}, nil
}

func normalizeZones(zones []int) []int {
	if len(zones) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(zones))
	out := make([]int, 0, len(zones))
	for _, z := range zones {
		if !seen[z] {
			seen[z] = true
			out = append(out, z)
		}
	}
	sort.Ints(out)
	return out
}
