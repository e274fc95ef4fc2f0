package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/thurmanmarka/natalglide"
)

// CSV format:
//
//	id,date,time,utc_offset_minutes,latitude,longitude
//	alice,1990-07-14,08:30,120,52.52,13.405
//	,2000-01-01,12:00,0,51.4769,0
//
// - the header row is optional
// - an empty id is replaced by a generated UUID
// - empty numeric fields count as missing
var batchColumns = []string{"id", "date", "time", "utc_offset_minutes", "latitude", "longitude"}

var batchOutColumns = []string{
	"id", "sun", "moon", "ascendant", "mercury", "venus", "mars", "jupiter", "saturn", "error", "message",
}

type batchRow struct {
	line     int
	id       string
	req      natalglide.Request
	parseErr error
}

type batchResult struct {
	line  int
	id    string
	chart natalglide.NatalChart
	err   error
}

func (a *app) runBatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(a.errOut)

	inPath := fs.String("in", "", "path to input CSV (- for stdin)")
	outPath := fs.String("out", "", "path to output CSV (default stdout)")
	workers := fs.Int("workers", 0, "concurrent charts (default NATAL_BATCH_WORKERS)")

	fs.Usage = func() {
		fmt.Fprintf(a.errOut, `Usage: natalglide batch -in births.csv [-out results.csv]

Input columns: %s

Flags:
`, strings.Join(batchColumns, ","))
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		fs.Usage()
		return errors.New("missing -in (path to births CSV)")
	}

	n := a.cfg.BatchWorkers
	if *workers > 0 {
		n = *workers
	}

	var in io.Reader = a.in
	if *inPath != "-" {
		f, err := os.Open(*inPath)
		if err != nil {
			return fmt.Errorf("failed to open input %q: %w", *inPath, err)
		}
		defer f.Close()
		in = f
	}

	out := a.out
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("failed to create output %q: %w", *outPath, err)
		}
		defer f.Close()
		out = f
	}

	rows, err := readBatch(in)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := a.processBatch(ctx, rows, n)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			a.log.WithField("id", r.id).
				WithField("line", r.line).
				WithField("code", natalglide.ErrorCode(r.err)).
				Warn(r.err.Error())
		}
	}

	if err := writeBatch(out, results); err != nil {
		return err
	}

	a.log.WithField("rows", len(results)).
		WithField("failed", failed).
		WithField("workers", n).
		WithField("elapsed", time.Since(start).String()).
		Info("batch complete")
	return nil
}

// readBatch parses the input CSV. Row-level problems are kept on the row so
// they surface in the output instead of aborting the batch.
func readBatch(r io.Reader) ([]batchRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // allow variable, we validate
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty CSV input")
	}

	// If first row looks like a header, skip it.
	startIdx := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "id") {
		startIdx = 1
	}

	rows := make([]batchRow, 0, len(records)-startIdx)
	for i := startIdx; i < len(records); i++ {
		rows = append(rows, parseBatchRow(i+1, records[i]))
	}
	return rows, nil
}

func parseBatchRow(line int, rec []string) batchRow {
	row := batchRow{line: line}

	field := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	row.id = field(0)
	if row.id == "" {
		row.id = uuid.NewString()
	}

	if len(rec) != len(batchColumns) {
		row.parseErr = fmt.Errorf("%w: expected %d columns, got %d", natalglide.ErrInvalidRequest, len(batchColumns), len(rec))
		return row
	}

	row.req.Date = field(1)
	row.req.Time = field(2)

	if s := field(3); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			row.parseErr = fmt.Errorf("%w: utc_offset_minutes %q", natalglide.ErrInvalidDate, s)
			return row
		}
		row.req.UTCOffsetMinutes = &v
	}

	for i, dst := range []**float64{&row.req.Latitude, &row.req.Longitude} {
		s := field(4 + i)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			row.parseErr = fmt.Errorf("%w: %s %q", natalglide.ErrInvalidCoordinate, batchColumns[4+i], s)
			return row
		}
		*dst = &v
	}
	return row
}

// processBatch computes every row's chart with at most workers in flight.
// Results keep input order. Only cancellation aborts the batch; row errors
// are recorded on the result.
func (a *app) processBatch(ctx context.Context, rows []batchRow, workers int) ([]batchResult, error) {
	results := make([]batchResult, len(rows))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, row := range rows {
		i, row := i, row

		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			res := batchResult{line: row.line, id: row.id, err: row.parseErr}
			if res.err == nil {
				res.chart, res.err = a.calc.ChartRequest(row.req)
			}
			// Each goroutine owns its own slot.
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeBatch(w io.Writer, results []batchResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(batchOutColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range results {
		rec := make([]string, 0, len(batchOutColumns))
		rec = append(rec, r.id)

		if r.err != nil {
			for range natalglide.Bodies {
				rec = append(rec, "")
			}
			rec = append(rec, natalglide.ErrorCode(r.err), r.err.Error())
		} else {
			for _, b := range natalglide.Bodies {
				s, _ := r.chart.Sign(b)
				rec = append(rec, s.String())
			}
			rec = append(rec, "", "")
		}

		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("line %d: failed to write CSV: %w", r.line, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
