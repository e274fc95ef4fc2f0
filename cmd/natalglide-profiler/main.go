package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thurmanmarka/natalglide"
	"github.com/thurmanmarka/natalglide/internal/config"
	"github.com/thurmanmarka/natalglide/internal/logging"
	"github.com/thurmanmarka/natalglide/internal/timeutil"
)

type stats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.sum += v
	s.count++
}

func (s *stats) mean() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// bodyReport accumulates errors for one body.
type bodyReport struct {
	abs          stats // |ours - ref| in degrees
	signed       stats // ours - ref in degrees, wrapped to (-180, 180]
	signMismatch int
}

// report is the result of a profiling run.
type report struct {
	rows    int
	skipped int
	bodies  map[natalglide.Body]*bodyReport
}

// refRow is one parsed reference ephemeris row.
type refRow struct {
	at   time.Time
	body natalglide.Body
	lon  float64
}

var refLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// CSV format:
//
//	datetime_utc,body,longitude
//	2000-01-01T12:00:00Z,sun,280.3689
//	2000-01-01 12:00,moon,223.3238
//
// - datetime is RFC3339 or YYYY-MM-DD HH:MM, taken as UTC when no zone is given
// - body is sun, moon, mercury, venus, mars, jupiter or saturn
// - longitude is the reference geocentric ecliptic longitude in degrees
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "natalglide-profiler: %v\n", err)
		os.Exit(1)
	}
}

// run parses flags, profiles the reference file and prints the summary to
// out. Deferred flushes and closes always run before it returns.
func run(args []string, out, errOut io.Writer) (err error) {
	fs := flag.NewFlagSet("natalglide-profiler", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var (
		refCSV  = fs.String("refcsv", "", "path to reference ephemeris CSV file (datetime_utc,body,longitude)")
		outCSV  = fs.String("outcsv", "", "optional path to write per-row error CSV")
		verbose = fs.Bool("verbose", false, "log per-row errors instead of only summary")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg, errOut)
	if err != nil {
		return err
	}
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *refCSV == "" {
		return errors.New("missing -refcsv (path to reference CSV)")
	}

	f, err := os.Open(*refCSV)
	if err != nil {
		return fmt.Errorf("failed to open refcsv %q: %w", *refCSV, err)
	}
	defer f.Close()

	var outWriter *csv.Writer
	if *outCSV != "" {
		outFile, err := os.Create(*outCSV)
		if err != nil {
			return fmt.Errorf("failed to create outcsv %q: %w", *outCSV, err)
		}
		defer func() {
			if cerr := outFile.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("failed to close outcsv %q: %w", *outCSV, cerr)
			}
		}()

		outWriter = csv.NewWriter(outFile)
		defer func() {
			outWriter.Flush()
			if ferr := outWriter.Error(); err == nil && ferr != nil {
				err = fmt.Errorf("failed to flush outcsv %q: %w", *outCSV, ferr)
			}
		}()
	}

	rep, err := profile(f, outWriter, log)
	if err != nil {
		return err
	}
	printSummary(out, *refCSV, rep)
	return nil
}

// profile compares every reference row against the engine and, when w is
// non-nil, writes one error row per processed input row.
func profile(r io.Reader, w *csv.Writer, log logrus.FieldLogger) (report, error) {
	rep := report{bodies: make(map[natalglide.Body]*bodyReport)}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // allow variable, we validate

	records, err := cr.ReadAll()
	if err != nil {
		return rep, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return rep, fmt.Errorf("empty CSV file")
	}

	// If first row looks like a header, skip it.
	startIdx := 0
	if len(records[0]) >= 1 && strings.HasPrefix(strings.ToLower(strings.TrimSpace(records[0][0])), "date") {
		startIdx = 1
	}

	if w != nil {
		if err := w.Write([]string{"datetime_utc", "body", "ref", "got", "abs_err", "signed_err", "ref_sign", "got_sign"}); err != nil {
			return rep, fmt.Errorf("failed to write outcsv header: %w", err)
		}
	}

	for i := startIdx; i < len(records); i++ {
		rep.rows++
		entry := log.WithField("row", i+1)

		row, err := parseRefRow(records[i])
		if err != nil {
			entry.WithError(err).Warn("skipping row")
			rep.skipped++
			continue
		}

		jd := timeutil.CivilToJulian(row.at.Year(), int(row.at.Month()), row.at.Day(),
			row.at.Hour(), row.at.Minute(), float64(row.at.Second()), 0)
		got, err := natalglide.EclipticLongitude(row.body, jd)
		if err != nil {
			entry.WithError(err).Warn("skipping row")
			rep.skipped++
			continue
		}

		signed := timeutil.Normalize180(got - row.lon)
		br := rep.bodies[row.body]
		if br == nil {
			br = &bodyReport{}
			rep.bodies[row.body] = br
		}
		br.abs.add(math.Abs(signed))
		br.signed.add(signed)

		refSign, gotSign := natalglide.SignOf(row.lon), natalglide.SignOf(got)
		if refSign != gotSign {
			br.signMismatch++
		}

		entry.WithField("body", row.body).
			WithField("ref", row.lon).
			WithField("got", got).
			WithField("err", signed).
			Debug("compared")

		if w != nil {
			rec := []string{
				row.at.Format(time.RFC3339),
				row.body.String(),
				fmt.Sprintf("%.6f", row.lon),
				fmt.Sprintf("%.6f", got),
				fmt.Sprintf("%.6f", math.Abs(signed)),
				fmt.Sprintf("%.6f", signed),
				refSign.String(),
				gotSign.String(),
			}
			if err := w.Write(rec); err != nil {
				entry.WithError(err).Error("failed to write outcsv")
			}
		}
	}

	return rep, nil
}

func parseRefRow(rec []string) (refRow, error) {
	if len(rec) < 3 {
		return refRow{}, fmt.Errorf("expected 3 columns (datetime_utc,body,longitude), got %d", len(rec))
	}

	at, err := parseUTC(strings.TrimSpace(rec[0]))
	if err != nil {
		return refRow{}, err
	}
	body, err := natalglide.ParseBody(rec[1])
	if err != nil {
		return refRow{}, err
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
	if err != nil {
		return refRow{}, fmt.Errorf("invalid longitude %q: %w", rec[2], err)
	}
	return refRow{at: at, body: body, lon: lon}, nil
}

func parseUTC(s string) (time.Time, error) {
	var parseErr error
	for _, layout := range refLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
		parseErr = err
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q: %w", s, parseErr)
}

func printSummary(w io.Writer, source string, rep report) {
	fmt.Fprintln(w, "=== natalglide profiler summary ===")
	fmt.Fprintf(w, "Source: %s\n", source)
	fmt.Fprintf(w, "Rows:   %d (processed), %d skipped\n", rep.rows-rep.skipped, rep.skipped)

	if len(rep.bodies) == 0 {
		fmt.Fprintln(w, "No valid rows to compute stats.")
		return
	}

	for _, b := range natalglide.Bodies {
		br, ok := rep.bodies[b]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n%s error (degrees):\n", b)
		fmt.Fprintf(w, "  count: %d\n", br.abs.count)
		fmt.Fprintf(w, "  min:   %.4f\n", br.abs.min)
		fmt.Fprintf(w, "  max:   %.4f\n", br.abs.max)
		fmt.Fprintf(w, "  avg:   %.4f\n", br.abs.mean())
		fmt.Fprintf(w, "  bias:  %.4f (ours - ref)\n", br.signed.mean())
		fmt.Fprintf(w, "  sign mismatches: %d\n", br.signMismatch)
	}
}
