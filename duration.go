package recipescrape

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// durationRe matches the coarse ISO-8601 durations recipe sites publish,
// e.g. "PT1H30M" or "P0DT45M". Seconds are accepted but ignored.
var durationRe = regexp.MustCompile(`(?i)^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:\d+(?:\.\d+)?S)?)?$`)

// ParseDurationISO8601 converts an ISO-8601 duration into whole minutes.
// Returns false if the text does not match, carries no day, hour or
// minute component, or does not fit in an int.
func ParseDurationISO8601(text string) (int, bool) {
	m := durationRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, false
	}
	if m[1] == "" && m[2] == "" && m[3] == "" {
		return 0, false
	}

	total := 0
	for i, perUnit := range []int{24 * 60, 60, 1} {
		n, err := strconv.Atoi(orZero(m[i+1]))
		if err != nil || n > (math.MaxInt-total)/perUnit {
			return 0, false
		}
		total += n * perUnit
	}
	return total, true
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
