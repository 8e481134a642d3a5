package settle

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/theconstruct/settle/errors"
)

// UnixTime is a point in time with seconds precision, as stored in escrow
// maturities and compared against the block time.
type UnixTime int64

// Time returns the moment in UTC.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// IsZero reports an unset time.
func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add returns the time shifted by d, truncated to whole seconds.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// AsUnixTime drops the sub-second part of t.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// ParseUnixTime reads either decimal unix seconds or an RFC3339 timestamp,
// the two forms accepted in genesis files and on the command line.
func ParseUnixTime(raw string) (UnixTime, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return unixSeconds(n)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "time %q is neither unix seconds nor RFC3339", raw)
	}
	return unixSeconds(t.Unix())
}

func unixSeconds(n int64) (UnixTime, error) {
	if n < 0 {
		return 0, errors.Wrap(errors.ErrInvalidInput, "time before epoch")
	}
	return UnixTime(n), nil
}

// UnmarshalJSON accepts a number of seconds or a string in any form
// ParseUnixTime understands.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err == nil {
		parsed, err := unixSeconds(unix)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "invalid time format")
	}
	parsed, err := ParseUnixTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Validate rejects times before the epoch.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrInvalidState, "negative value")
	}
	return nil
}

// String formats the time like time.Time does.
func (t UnixTime) String() string {
	return t.Time().String()
}
