package normalizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var numberPattern = regexp.MustCompile(`[-+]?\d[\d,]*(?:\.\d+)?`)

// first returns the first path that resolves to a non-null value.
func first(raw gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if r := raw.Get(p); r.Exists() && r.Type != gjson.Null {
			return r
		}
	}
	return gjson.Result{}
}

// str resolves the first path holding a non-blank scalar.
func str(raw gjson.Result, paths ...string) string {
	for _, p := range paths {
		r := raw.Get(p)
		if r.Type != gjson.String && r.Type != gjson.Number {
			continue
		}
		if s := strings.TrimSpace(r.String()); s != "" {
			return s
		}
	}
	return ""
}

// num resolves the first path holding a finite number or a numeric string.
func num(raw gjson.Result, paths ...string) (float64, bool) {
	for _, p := range paths {
		if v, ok := asNumber(raw.Get(p)); ok {
			return v, true
		}
	}
	return 0, false
}

func asNumber(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		v := r.Float()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case gjson.String:
		nums := parseNumbers(r.String())
		if len(nums) == 0 {
			return 0, false
		}
		return nums[0], true
	}
	return 0, false
}

// parseNumbers extracts every number in a free-text value such as "600 (+100)" or "3,000 gold".
func parseNumbers(s string) []float64 {
	matches := numberPattern.FindAllString(s, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// names flattens a list of strings or {name: ...} objects; a bare string becomes one entry.
// The result is never nil.
func names(r gjson.Result) []string {
	out := []string{}
	switch {
	case r.IsArray():
		for _, el := range r.Array() {
			if n := nameOf(el); n != "" {
				out = append(out, n)
			}
		}
	case r.Type == gjson.String:
		if s := strings.TrimSpace(r.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func nameOf(r gjson.Result) string {
	if r.Type == gjson.String {
		return strings.TrimSpace(r.String())
	}
	if r.IsObject() {
		return str(r, "name", "title", "alt", "alt_text")
	}
	return ""
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// groupThousands renders an integer count as "50,000". Magnitudes past int64 are grouped
// from the float's decimal form rather than converted.
func groupThousands(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return formatNumber(v)
	}
	r := math.Round(v)
	neg := r < 0
	digits := strconv.FormatFloat(math.Abs(r), 'f', 0, 64)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
