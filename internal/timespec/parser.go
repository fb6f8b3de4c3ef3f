package timespec

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date form accepted by Parse.
const DateLayout = "2006-01-02"

// Parse parses a time specification into a Unix timestamp (milliseconds).
// Supports three formats:
//   - Go duration format: "1h", "30m", "1h30m", "2h45m30s" (that long ago)
//   - RFC3339 timestamps: "2025-10-29T13:00:00Z"
//   - Calendar dates: "2025-10-29" (midnight UTC)
func Parse(spec string) (int64, error) {
	return parseAt(spec, time.Now())
}

func parseAt(spec string, now time.Time) (int64, error) {
	if spec == "" {
		return 0, fmt.Errorf("empty time specification")
	}

	if t, err := time.Parse(time.RFC3339, spec); err == nil {
		return t.UnixMilli(), nil
	}

	if t, err := time.Parse(DateLayout, spec); err == nil {
		return t.UnixMilli(), nil
	}

	if d, err := time.ParseDuration(spec); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("negative duration: %s", spec)
		}
		return now.Add(-d).UnixMilli(), nil
	}

	return 0, fmt.Errorf("invalid time specification: %s (use duration like '1h30m', date like '2025-10-29' or RFC3339 like '2025-10-29T13:00:00Z')", spec)
}

// ParseRange parses both --since and --until flags into a time range.
// Returns (sinceTimestampMs, untilTimestampMs, error).
// Zero values indicate "no bound" for that end of the range.
func ParseRange(since, until string) (int64, int64, error) {
	return parseRangeAt(since, until, time.Now())
}

func parseRangeAt(since, until string, now time.Time) (int64, int64, error) {
	var sinceMS, untilMS int64
	var err error

	if since != "" {
		sinceMS, err = parseAt(since, now)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid --since: %w", err)
		}
	}

	if until != "" {
		untilMS, err = parseAt(until, now)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid --until: %w", err)
		}
	}

	if sinceMS > 0 && untilMS > 0 && sinceMS >= untilMS {
		return 0, 0, fmt.Errorf("--since must be before --until")
	}

	return sinceMS, untilMS, nil
}
