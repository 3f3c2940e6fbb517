package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"tubemap/internal/models"
)

// flexString accepts a JSON string or number. Network files write zones and
// times either way.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

type document struct {
	Stations    []stationRecord    `json:"stations"`
	Lines       []lineRecord       `json:"lines"`
	Connections []connectionRecord `json:"connections"`
}

type stationRecord struct {
	ID   flexString `json:"id" validate:"required"`
	Name string     `json:"name" validate:"required"`
	Zone flexString `json:"zone" validate:"required,zone"`
}

type lineRecord struct {
	ID   flexString `json:"line" validate:"required"`
	Name string     `json:"name" validate:"required"`
}

type connectionRecord struct {
	Station1 flexString `json:"station1" validate:"required"`
	Station2 flexString `json:"station2" validate:"required,nefield=Station1"`
	Line     flexString `json:"line" validate:"required"`
	Time     flexString `json:"time" validate:"required,minutes"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("zone", func(fl validator.FieldLevel) bool {
		_, err := models.ParseZone(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("minutes", func(fl validator.FieldLevel) bool {
		_, err := parseMinutes(fl.Field().String())
		return err == nil
	})
	return v
}

// parseMinutes accepts positive whole minutes, written as "3" or "3.0".
func parseMinutes(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("time must be positive, got %d", n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", raw)
	}
	if f <= 0 || f != float64(int(f)) {
		return 0, fmt.Errorf("time must be a positive whole number, got %q", raw)
	}
	return int(f), nil
}
