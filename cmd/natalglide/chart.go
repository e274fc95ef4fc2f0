package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/thurmanmarka/natalglide"
)

func (a *app) runChart(args []string) error {
	fs := flag.NewFlagSet("chart", flag.ContinueOnError)
	fs.SetOutput(a.errOut)

	date := fs.String("date", "", "birth date in YYYY-MM-DD")
	clock := fs.String("time", "", "birth clock time in HH:MM")
	offset := fs.Int("offset", 0, "UTC offset in minutes east of Greenwich at the moment of birth (e.g. 120 for UTC+2)")
	lat := fs.Float64("lat", 0, "latitude in degrees (north positive)")
	lon := fs.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
	reqPath := fs.String("request", "", "read a JSON request document from this file instead of flags (- for stdin)")
	jsonOut := fs.Bool("json", false, "output result as JSON")
	positions := fs.Bool("positions", false, "include raw longitudes, Midheaven and Moon phase")

	fs.Usage = func() {
		fmt.Fprintf(a.errOut, `Usage: natalglide chart [flags]

Every one of -date, -time, -offset, -lat and -lon is required unless
-request is given. There is no default location.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	var req natalglide.Request
	if *reqPath != "" {
		data, err := a.readInput(*reqPath)
		if err != nil {
			return err
		}
		if req, err = natalglide.ParseRequest(data); err != nil {
			return a.fail(err, *jsonOut)
		}
	} else {
		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

		req = natalglide.Request{Date: *date, Time: *clock}
		if set["offset"] {
			req.UTCOffsetMinutes = offset
		}
		if set["lat"] {
			req.Latitude = lat
		}
		if set["lon"] {
			req.Longitude = lon
		}
	}

	moment, loc, err := a.calc.Resolve(req)
	if err != nil {
		return a.fail(err, *jsonOut)
	}

	a.log.WithField("date", req.Date).
		WithField("time", req.Time).
		WithField("lat", loc.Lat).
		WithField("lon", loc.Lon).
		Debug("computing chart")

	pos, err := a.calc.Positions(moment, loc)
	if err != nil {
		return a.fail(err, *jsonOut)
	}

	switch {
	case *jsonOut && *positions:
		return writeJSON(a.out, pos)
	case *jsonOut:
		return writeJSON(a.out, pos.Chart())
	default:
		a.printChart(moment, loc, pos, *positions)
		return nil
	}
}

func (a *app) fail(err error, jsonOut bool) error {
	if jsonOut {
		return a.reportJSON(err)
	}
	return err
}

func (a *app) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(a.in)
	}
	return os.ReadFile(path)
}

func (a *app) printChart(m natalglide.BirthMoment, loc natalglide.GeoCoordinate, pos natalglide.Positions, verbose bool) {
	fmt.Fprintf(a.out, "Natal chart for %04d-%02d-%02d %02d:%02d (UTC%s) at lat=%.4f lon=%.4f\n\n",
		m.Year, m.Month, m.Day, m.Hour, m.Minute, formatOffset(m.UTCOffsetMinutes), loc.Lat, loc.Lon)

	for _, b := range natalglide.Bodies {
		lon := pos.Longitudes[b]
		fmt.Fprintf(a.out, "  %-10s %-12s %5.2f°\n", b.String()+":", natalglide.SignOf(lon), natalglide.DegreeInSign(lon))
	}

	if !verbose {
		return
	}

	fmt.Fprintf(a.out, "\n  Midheaven : %s %.2f°\n", natalglide.SignOf(pos.Midheaven), natalglide.DegreeInSign(pos.Midheaven))
	fmt.Fprintf(a.out, "  Julian Date: %.6f\n", pos.JulianDate)
	fmt.Fprintf(a.out, "  Obliquity : %.4f°\n", pos.Obliquity)
	fmt.Fprintf(a.out, "  LST       : %.4f°\n", pos.SiderealTime)
	fmt.Fprintf(a.out, "  Moon phase: %s (%.1f%% illuminated)\n", pos.MoonPhase.Name, pos.MoonPhase.Fraction*100)
	fmt.Fprintf(a.out, "  Sun dist. : %.5f AU\n", pos.SunDistance)
}

// formatOffset renders minutes east of UTC as +hh:mm.
func formatOffset(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}
