package natalglide

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Wire layouts for Request.Date and Request.Time.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Request is the JSON input contract:
//
//	{"date":"1990-07-14","time":"08:30","utc_offset_minutes":120,
//	 "latitude":52.52,"longitude":13.405}
//
// Every field is required. Date is YYYY-MM-DD and Time is 24-hour HH:MM,
// both zero-padded: "8:30" is rejected, "08:30" is accepted. Coordinates
// are pointers so that a missing value is distinguishable from 0; a missing
// location is an error, never a default.
type Request struct {
	Date             string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time             string   `json:"time" validate:"required,len=5,datetime=15:04"`
	UTCOffsetMinutes *int     `json:"utc_offset_minutes" validate:"required,min=-840,max=840"`
	Latitude         *float64 `json:"latitude" validate:"required,latitude"`
	Longitude        *float64 `json:"longitude" validate:"required,longitude"`
}

// ParseRequest decodes a single request document. Unknown fields are
// rejected.
func ParseRequest(data []byte) (Request, error) {
	var req Request

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Request{}, fmt.Errorf("%w: trailing data after request", ErrInvalidRequest)
	}
	return req, nil
}

// Resolve validates req and converts it into the engine's input types.
// Date, time and offset problems map to ErrInvalidDate; missing or
// out-of-range coordinates map to ErrInvalidCoordinate.
func (c *Calculator) Resolve(req Request) (BirthMoment, GeoCoordinate, error) {
	if err := c.validateRequest(req); err != nil {
		return BirthMoment{}, GeoCoordinate{}, err
	}

	d, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return BirthMoment{}, GeoCoordinate{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	clock, err := time.Parse(TimeLayout, req.Time)
	if err != nil {
		return BirthMoment{}, GeoCoordinate{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	m := BirthMoment{
		Year:             d.Year(),
		Month:            int(d.Month()),
		Day:              d.Day(),
		Hour:             clock.Hour(),
		Minute:           clock.Minute(),
		UTCOffsetMinutes: *req.UTCOffsetMinutes,
	}
	loc := GeoCoordinate{Lat: *req.Latitude, Lon: *req.Longitude}

	if err := m.Validate(); err != nil {
		return BirthMoment{}, GeoCoordinate{}, err
	}
	if err := loc.Validate(); err != nil {
		return BirthMoment{}, GeoCoordinate{}, err
	}
	return m, loc, nil
}

// ChartRequest resolves req and computes its chart.
func (c *Calculator) ChartRequest(req Request) (NatalChart, error) {
	m, loc, err := c.Resolve(req)
	if err != nil {
		return NatalChart{}, err
	}
	return c.Chart(m, loc)
}

// validateRequest runs the struct tags and folds the first failure into
// the error taxonomy.
func (c *Calculator) validateRequest(req Request) error {
	v := c.validate
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}

	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	fe := verrs[0]
	kind := ErrInvalidDate
	switch fe.StructField() {
	case "Latitude", "Longitude":
		kind = ErrInvalidCoordinate
	}

	field := strings.ToLower(fe.Field())
	if fe.Tag() == "required" {
		return fmt.Errorf("%w: %s is required", kind, field)
	}
	return fmt.Errorf("%w: %s failed %q check (value %v)", kind, field, fe.Tag(), fe.Value())
}
