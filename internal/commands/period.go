package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// period is an inclusive date range.
type period struct {
	From time.Time
	To   time.Time
}

func (p period) String() string {
	return p.From.Format(dateFormat) + "--" + p.To.Format(dateFormat)
}

// parsePeriod accepts a redovisningsperiod as "2025-03" (month), "2025-Q1"
// (quarter) or "2025" (year).
func parsePeriod(s string) (period, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	if year, q, ok := strings.Cut(s, "-Q"); ok {
		y, err := strconv.Atoi(year)
		if err != nil || len(year) != 4 {
			return period{}, fmt.Errorf("invalid year in period %q", s)
		}
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 4 {
			return period{}, fmt.Errorf("invalid quarter in period %q", s)
		}
		from := time.Date(y, time.Month(3*(n-1)+1), 1, 0, 0, 0, 0, time.UTC)
		return period{From: from, To: from.AddDate(0, 3, -1)}, nil
	}

	if len(s) == 4 {
		y, err := strconv.Atoi(s)
		if err != nil {
			return period{}, fmt.Errorf("invalid period %q", s)
		}
		return period{
			From: time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(y, 12, 31, 0, 0, 0, 0, time.UTC),
		}, nil
	}

	from, err := time.Parse("2006-01", s)
	if err != nil {
		return period{}, fmt.Errorf("invalid period %q: use YYYY-MM, YYYY-Qn or YYYY", s)
	}
	return period{From: from, To: from.AddDate(0, 1, -1)}, nil
}

// resolvePeriod combines --period with --from/--to. Exactly one form must be
// used.
func resolvePeriod(p, from, to string) (period, error) {
	switch {
	case p != "" && (from != "" || to != ""):
		return period{}, fmt.Errorf("use either --period or --from/--to")
	case p != "":
		return parsePeriod(p)
	case from == "" || to == "":
		return period{}, fmt.Errorf("--period or both --from and --to are required")
	}

	f, err := time.Parse(dateFormat, from)
	if err != nil {
		return period{}, fmt.Errorf("--from: %w", err)
	}
	t, err := time.Parse(dateFormat, to)
	if err != nil {
		return period{}, fmt.Errorf("--to: %w", err)
	}
	if t.Before(f) {
		return period{}, fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return period{From: f, To: t}, nil
}
