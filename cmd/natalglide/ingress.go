package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/thurmanmarka/natalglide"
)

func (a *app) runIngress(args []string) error {
	fs := flag.NewFlagSet("ingress", flag.ContinueOnError)
	fs.SetOutput(a.errOut)

	bodyS := fs.String("body", "sun", "body: sun, moon, mercury, venus, mars, jupiter or saturn")
	fromS := fs.String("from", "", "start of the search in RFC3339 (optional, defaults to now)")
	days := fs.Int("days", 366, "search window in days")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(a.errOut, `Usage: natalglide ingress [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	body, err := natalglide.ParseBody(*bodyS)
	if err != nil {
		return a.fail(err, *jsonOut)
	}

	from := time.Now().UTC()
	if *fromS != "" {
		if from, err = time.Parse(time.RFC3339, *fromS); err != nil {
			return a.fail(fmt.Errorf("invalid -from %q: %w", *fromS, err), *jsonOut)
		}
	}

	ing, err := natalglide.NextIngress(body, from, time.Duration(*days)*24*time.Hour)
	if err != nil {
		return a.fail(err, *jsonOut)
	}

	if *jsonOut {
		return writeJSON(a.out, ing)
	}

	fmt.Fprintf(a.out, "%s enters %s from %s at %s", ing.Body, ing.To, ing.From, ing.Time.Format(time.RFC3339))
	if ing.Retrograde {
		fmt.Fprint(a.out, " (retrograde)")
	}
	fmt.Fprintln(a.out)
	return nil
}
