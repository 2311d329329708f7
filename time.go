package swapvault

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/iov-one/swapvault/errors"
)

// UnixTime represents a point in time as POSIX time.
// Contracts compare time with seconds precision only, so instead of Go's
// time.Time a primitive int64 is stored in records and messages.
type UnixTime int64

// Time returns a time.Time structure that represents the same moment in time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// IsZero returns true if this time represents a zero value.
func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add modifies this UNIX time by given duration. This is compatible with
// time.Time.Add method.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// AsUnixTime converts given Time structure into its UNIX time representation.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// UnmarshalJSON supports unmarshaling from a number, a quoted number and
// from the time.Time text format.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err == nil {
		return t.set(unix)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "invalid time format")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return t.set(n)
	}
	stdtime, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "invalid time format")
	}
	return t.set(stdtime.Unix())
}

func (t *UnixTime) set(unix int64) error {
	if unix < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = UnixTime(unix)
	return nil
}

// Validate returns an error if this time value is invalid.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrInput, "negative value")
	}
	return nil
}

// String returns the number of seconds since epoch.
func (t UnixTime) String() string {
	return strconv.FormatInt(int64(t), 10)
}
