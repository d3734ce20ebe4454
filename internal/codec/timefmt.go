package codec

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tuannm99/reflected/internal/fieldtype"
)

// DateLayout is the canonical date/time layout: nanosecond precision, zero
// padded, no zone. Values are written in UTC and parsed as UTC. Years
// outside 0000-9999 are written the way time.Format writes them
// ("12000-01-01 ...", "-0001-01-01 ...") and decoded back.
const DateLayout = "2006-01-02 15:04:05.000000000"

// leapYear stands in for wide years while the rest of the layout is parsed,
// so Feb 29 gets through and is checked against the real year afterwards.
const leapYear = "2000"

// ---- Date / DateTime ----

type timeCodec struct{ tp fieldtype.Type }

// Date returns the codec for time.Time fields tagged Date.
func Date() Codec[time.Time] { return timeCodec{tp: fieldtype.Date} }

// DateTime returns the codec for time.Time fields tagged DateTime. The
// string form is identical to Date.
func DateTime() Codec[time.Time] { return timeCodec{tp: fieldtype.DateTime} }

func (c timeCodec) Type() fieldtype.Type { return c.tp }
func (c timeCodec) TypeName() string     { return "time.Time" }

func (c timeCodec) Encode(v time.Time) string { return v.UTC().Format(DateLayout) }

func (c timeCodec) Decode(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err == nil {
		return t, nil
	}
	if t, ok := parseWideYear(s); ok {
		return t, nil
	}
	return time.Time{}, decodeErr("time.Time", s, err)
}

// parseWideYear accepts the forms time.Parse rejects: a negative year or a
// year above 9999 without leading zeros.
func parseWideYear(s string) (time.Time, bool) {
	body, neg := strings.CutPrefix(s, "-")
	i := strings.IndexByte(body, '-')
	if i < 4 || (i == 4 && !neg) {
		return time.Time{}, false
	}
	digits := body[:i]
	if i > 4 && digits[0] == '0' {
		return time.Time{}, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return time.Time{}, false
		}
	}
	year, err := strconv.Atoi(digits)
	if err != nil {
		return time.Time{}, false
	}
	if neg {
		year = -year
	}

	rest, err := time.Parse(DateLayout, leapYear+body[i:])
	if err != nil {
		return time.Time{}, false
	}
	t := time.Date(year, rest.Month(), rest.Day(),
		rest.Hour(), rest.Minute(), rest.Second(), rest.Nanosecond(), time.UTC)
	if t.Day() != rest.Day() {
		// Feb 29 of a non-leap year
		return time.Time{}, false
	}
	return t, true
}

// ---- Duration ----

const (
	maxDurationSeconds = math.MaxInt64 / int64(time.Second)
	minDurationSeconds = math.MinInt64 / int64(time.Second)
)

type durationCodec struct{}

// Duration returns the codec for time.Duration. Sub-second precision is
// dropped on encode.
func Duration() Codec[time.Duration] { return durationCodec{} }

func (durationCodec) Type() fieldtype.Type { return fieldtype.Duration }
func (durationCodec) TypeName() string     { return "time.Duration" }

func (durationCodec) Encode(v time.Duration) string {
	return strconv.FormatInt(int64(v/time.Second), 10)
}

func (durationCodec) Decode(s string) (time.Duration, error) {
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, decodeErr("time.Duration", s, err)
	}
	if secs > maxDurationSeconds || secs < minDurationSeconds {
		return 0, decodeErr("time.Duration", s, ErrOutOfRange)
	}
	return time.Duration(secs) * time.Second, nil
}
