package natalglide

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator()
	require.NoError(t, err)
	return calc
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{
		"date": "1990-07-14",
		"time": "08:30",
		"utc_offset_minutes": 120,
		"latitude": 52.52,
		"longitude": 13.405
	}`))
	require.NoError(t, err)

	assert.Equal(t, "1990-07-14", req.Date)
	assert.Equal(t, "08:30", req.Time)
	require.NotNil(t, req.UTCOffsetMinutes)
	assert.Equal(t, 120, *req.UTCOffsetMinutes)
	require.NotNil(t, req.Latitude)
	assert.Equal(t, 52.52, *req.Latitude)
	require.NotNil(t, req.Longitude)
	assert.Equal(t, 13.405, *req.Longitude)
}

func TestParseRequest_Malformed(t *testing.T) {
	for _, doc := range []string{
		``,
		`{`,
		`[]`,
		`{"date":"1990-07-14","extra":true}`,
		`{"date":"1990-07-14"} {"date":"1990-07-15"}`,
		`{"latitude":"north"}`,
	} {
		_, err := ParseRequest([]byte(doc))
		assert.ErrorIs(t, err, ErrInvalidRequest, "doc %q", doc)
		assert.Equal(t, CodeInvalidRequest, ErrorCode(err))
	}
}

func TestCalculator_ChartRequest(t *testing.T) {
	calc := newTestCalculator(t)

	req, err := ParseRequest([]byte(`{"date":"1990-07-14","time":"08:30","utc_offset_minutes":120,"latitude":52.52,"longitude":13.405}`))
	require.NoError(t, err)

	chart, err := calc.ChartRequest(req)
	require.NoError(t, err)

	data, err := json.Marshal(chart)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"sun":"Cancer","moon":"Aries","ascendant":"Leo","mercury":"Leo",
		"venus":"Gemini","mars":"Taurus","jupiter":"Cancer","saturn":"Capricorn"
	}`, string(data))
}

func TestCalculator_Resolve(t *testing.T) {
	calc := newTestCalculator(t)

	m, loc, err := calc.Resolve(Request{
		Date:             "2000-02-29",
		Time:             "23:05",
		UTCOffsetMinutes: intPtr(-330),
		Latitude:         floatPtr(-33.9),
		Longitude:        floatPtr(18.4),
	})
	require.NoError(t, err)

	assert.Equal(t, BirthMoment{Year: 2000, Month: 2, Day: 29, Hour: 23, Minute: 5, UTCOffsetMinutes: -330}, m)
	assert.Equal(t, GeoCoordinate{Lat: -33.9, Lon: 18.4}, loc)
}

func TestCalculator_ResolveErrors(t *testing.T) {
	calc := newTestCalculator(t)

	valid := func() Request {
		return Request{
			Date:             "1990-07-14",
			Time:             "08:30",
			UTCOffsetMinutes: intPtr(120),
			Latitude:         floatPtr(52.52),
			Longitude:        floatPtr(13.405),
		}
	}

	tests := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{"30 February", func(r *Request) { r.Date = "2023-02-30" }, ErrInvalidDate},
		{"29 February 2023", func(r *Request) { r.Date = "2023-02-29" }, ErrInvalidDate},
		{"bad date format", func(r *Request) { r.Date = "14/07/1990" }, ErrInvalidDate},
		{"missing date", func(r *Request) { r.Date = "" }, ErrInvalidDate},
		{"hour 24", func(r *Request) { r.Time = "24:00" }, ErrInvalidDate},
		{"single-digit hour", func(r *Request) { r.Time = "8:30" }, ErrInvalidDate},
		{"single-digit month", func(r *Request) { r.Date = "1990-7-14" }, ErrInvalidDate},
		{"minute 61", func(r *Request) { r.Time = "10:61" }, ErrInvalidDate},
		{"missing time", func(r *Request) { r.Time = "" }, ErrInvalidDate},
		{"missing offset", func(r *Request) { r.UTCOffsetMinutes = nil }, ErrInvalidDate},
		{"offset too large", func(r *Request) { r.UTCOffsetMinutes = intPtr(900) }, ErrInvalidDate},
		{"year too early", func(r *Request) { r.Date = "1200-01-01" }, ErrInvalidDate},
		{"latitude 95", func(r *Request) { r.Latitude = floatPtr(95) }, ErrInvalidCoordinate},
		{"latitude -91", func(r *Request) { r.Latitude = floatPtr(-91) }, ErrInvalidCoordinate},
		{"longitude 181", func(r *Request) { r.Longitude = floatPtr(181) }, ErrInvalidCoordinate},
		{"missing latitude", func(r *Request) { r.Latitude = nil }, ErrInvalidCoordinate},
		{"missing longitude", func(r *Request) { r.Longitude = nil }, ErrInvalidCoordinate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)

			_, _, err := calc.Resolve(r)
			assert.ErrorIs(t, err, tt.want)

			_, err = calc.ChartRequest(r)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCalculator_ChartRequest_Polar(t *testing.T) {
	calc := newTestCalculator(t)

	_, err := calc.ChartRequest(Request{
		Date:             "1990-07-14",
		Time:             "08:30",
		UTCOffsetMinutes: intPtr(60),
		Latitude:         floatPtr(78.22),
		Longitude:        floatPtr(15.65),
	})
	assert.ErrorIs(t, err, ErrAscendantUndefined)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, CodeNumericDomain, ErrorCode(ErrNumericDomain))
	assert.Equal(t, CodeNoIngress, ErrorCode(ErrNoIngress))
	assert.Equal(t, CodeUnsupportedBody, ErrorCode(ErrUnsupportedBody))
	assert.Equal(t, CodeInternal, ErrorCode(assert.AnError))
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
