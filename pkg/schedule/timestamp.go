package schedule

import (
	"fmt"
	"strings"
	"time"
)

// TimestampFormat is the format new code writes: RFC 3339 with an
// explicit zone. Older notes may carry bare timestamps without one; both
// must keep parsing because the persisted format changed over the
// system's lifetime without migrating data.
const TimestampFormat = time.RFC3339

// bareFormats are the zone-less layouts tolerated when reading.
var bareFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// zonedFormats carry an explicit zone indicator and are parsed as-is.
var zonedFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

// ParseTimestamp reads a stored last-reviewed value. Timestamps with an
// explicit zone (trailing Z or a +/- offset after the date-time
// separator) are parsed as-is; bare timestamps are interpreted in the
// zone selected by mode.
func ParseTimestamp(value string, mode ZoneMode) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if hasExplicitZone(value) {
		for _, layout := range zonedFormats {
			if t, err := time.Parse(layout, value); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized zoned timestamp %q", value)
	}

	loc := time.UTC
	if mode == ZoneLocal {
		loc = time.Local
	}
	for _, layout := range bareFormats {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// hasExplicitZone reports whether the value ends in Z or carries a
// +/- offset after the date part. The date itself contains dashes, so
// only the portion after the date-time separator is inspected.
func hasExplicitZone(value string) bool {
	if strings.HasSuffix(value, "Z") {
		return true
	}
	sep := strings.IndexAny(value, "T ")
	if sep < 0 {
		return false
	}
	rest := value[sep+1:]
	return strings.ContainsAny(rest, "+-")
}

// lastReviewedTime reads a note's last-reviewed anchor. A missing value
// means reviewed at time zero: onboarded notes without an anchor are
// always overdue.
func lastReviewedTime(md map[string]any, mode ZoneMode) (time.Time, error) {
	v, ok := md[KeyLastReviewed]
	if !ok || v == nil {
		return time.Unix(0, 0).UTC(), nil
	}
	switch t := v.(type) {
	case time.Time:
		// yaml.v3 decodes ISO timestamps natively.
		return t, nil
	case string:
		return ParseTimestamp(t, mode)
	default:
		return time.Time{}, fmt.Errorf("last-reviewed has unsupported type %T", v)
	}
}
