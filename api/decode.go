package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// flexFloat accepts JSON numbers, numeric strings ("12,50" included) and null.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	raw, err := scalarText(b)
	if err != nil {
		return err
	}
	if raw == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", raw, err)
	}
	*f = flexFloat(v)
	return nil
}

// flexInt accepts integral or fractional numbers and numeric strings.
type flexInt int

func (i *flexInt) UnmarshalJSON(b []byte) error {
	var f flexFloat
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	*i = flexInt(math.Round(float64(f)))
	return nil
}

// flexString accepts strings and numbers, as set ids come as either.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	raw, err := scalarText(b)
	if err != nil {
		return err
	}
	*s = flexString(raw)
	return nil
}

// flexTime accepts unix seconds or milliseconds (as numbers or strings),
// RFC 3339 and plain date strings.
type flexTime time.Time

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Unix timestamps above this are taken as milliseconds.
const unixMillisThreshold = 1e11

func (t *flexTime) UnmarshalJSON(b []byte) error {
	raw, err := scalarText(b)
	if err != nil {
		return err
	}
	if raw == "" {
		*t = flexTime(time.Time{})
		return nil
	}

	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		if n <= 0 {
			*t = flexTime(time.Time{})
			return nil
		}
		if n > unixMillisThreshold {
			*t = flexTime(time.UnixMilli(int64(n)).UTC())
			return nil
		}
		sec, frac := math.Modf(n)
		*t = flexTime(time.Unix(int64(sec), int64(frac*1e9)).UTC())
		return nil
	}

	for _, layout := range flexTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			*t = flexTime(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q: unsupported format", raw)
}

func (t flexTime) Time() time.Time {
	return time.Time(t)
}

// scalarText returns the trimmed textual form of a JSON scalar.
// null yields the empty string.
func scalarText(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	if b[0] == '{' || b[0] == '[' {
		return "", fmt.Errorf("expected scalar, got %s", summarizeHTTPBody(b))
	}
	if bytes.Equal(b, []byte("true")) || bytes.Equal(b, []byte("false")) {
		return "", fmt.Errorf("expected number or string, got %s", b)
	}
	return string(b), nil
}
