package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	emphasisRegexp = regexp.MustCompile(`\*([^*]+)\*`)
	priceRegexp    = regexp.MustCompile(`(\d+)(K?)`)
)

// MinPrice extracts the minimum price from a formatted result block by
// scanning each line for a *...* emphasis span and parsing its leading
// integer, where a K suffix multiplies by 1000. A block without line breaks
// is a one-line status message and yields no price.
func MinPrice(text string) (int64, bool) {
	if !strings.Contains(text, "\n") {
		return 0, false
	}

	var min int64
	found := false
	for _, line := range strings.Split(text, "\n") {
		price, ok := parsePrice(line)
		if !ok {
			continue
		}
		if !found || price < min {
			min = price
			found = true
		}
	}
	return min, found
}

func parsePrice(line string) (int64, bool) {
	span := emphasisRegexp.FindStringSubmatch(line)
	if span == nil {
		return 0, false
	}
	m := priceRegexp.FindStringSubmatch(span[1])
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	if m[2] == "K" {
		n *= 1000
	}
	return n, true
}
