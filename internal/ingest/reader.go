// Package ingest loads batch scrape targets from CSV files.
package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/trendlab/subreddit-trends/internal/domain"
)

// Regex for valid subreddit names
var subNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,21}$`)

// LoadTargets reads scrape targets from a CSV of
// subreddit[,method[,time_filter]] rows. The header row is skipped and
// invalid rows are dropped (fail-soft); a method defaults to top with a
// week filter, and hot targets ignore any filter column.
func LoadTargets(path string) ([]domain.Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", path)
	}
	defer f.Close()

	// Wrap in BOM stripper
	r := csv.NewReader(stripBOM(f))
	r.FieldsPerRecord = -1

	var targets []domain.Target
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		line++
		if line == 1 {
			continue // Skip header
		}

		t, ok := parseTarget(record)
		if !ok {
			continue
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// parseTarget validates one record against the target grammar.
func parseTarget(record []string) (domain.Target, bool) {
	if len(record) == 0 {
		return domain.Target{}, false
	}

	sub := strings.TrimSpace(record[0])
	if !subNameRegex.MatchString(sub) {
		return domain.Target{}, false
	}

	t := domain.Target{
		Subreddit:  sub,
		Method:     domain.FetchTop,
		TimeFilter: domain.TimeFilterWeek,
	}

	if len(record) > 1 && strings.TrimSpace(record[1]) != "" {
		method, err := domain.ParseFetchMethod(strings.TrimSpace(record[1]))
		if err != nil {
			return domain.Target{}, false
		}
		t.Method = method
	}

	if t.Method == domain.FetchHot {
		t.TimeFilter = ""
		return t, true
	}

	if len(record) > 2 && strings.TrimSpace(record[2]) != "" {
		filter, err := domain.ParseTimeFilter(strings.TrimSpace(record[2]))
		if err != nil {
			return domain.Target{}, false
		}
		t.TimeFilter = filter
	}

	return t, true
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
