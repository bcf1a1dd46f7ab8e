package ranking

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

var (
	// isoDurationRe matches the YouTube API form, e.g. PT1H2M3S or P1DT2H.
	isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)
	// compactDurationRe matches the bare form, e.g. 1h2m3s or 45s.
	compactDurationRe = regexp.MustCompile(`(?i)^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)
)

// ParseDuration converts a duration code into total seconds. Malformed input
// yields 0; duration is advisory and never fails a batch.
func ParseDuration(code string) int {
	if code == "" {
		return 0
	}

	if m := isoDurationRe.FindStringSubmatch(code); m != nil {
		return sumDuration(m[1], m[2], m[3], m[4])
	}
	if m := compactDurationRe.FindStringSubmatch(code); m != nil {
		return sumDuration("", m[1], m[2], m[3])
	}
	return 0
}

// MaxDurationSeconds caps parsed durations so the result fits in int on
// every platform.
const MaxDurationSeconds = math.MaxInt32

func sumDuration(days, hours, minutes, seconds string) int {
	units := [...]struct {
		val  string
		mult int64
	}{
		{days, 86400},
		{hours, 3600},
		{minutes, 60},
		{seconds, 1},
	}

	var total int64
	for _, u := range units {
		if u.val == "" {
			continue
		}
		n, err := strconv.ParseInt(u.val, 10, 64)
		if errors.Is(err, strconv.ErrRange) || n > MaxDurationSeconds/u.mult {
			return MaxDurationSeconds
		}
		if err != nil {
			return 0
		}
		total += n * u.mult
		if total > MaxDurationSeconds {
			return MaxDurationSeconds
		}
	}
	return int(total)
}
