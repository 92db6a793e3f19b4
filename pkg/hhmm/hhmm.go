// Package hhmm handles the wall-clock "HH:MM" strings used as scheduling keys.
package hhmm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var separators = regexp.MustCompile(`[:\s]+`)

// Normalize converts loose user input ("9:5", "17 30", "25:99") into the
// canonical zero-padded "HH:MM". Hour is clamped to [0,23], minute to [0,59],
// a missing or unparseable component counts as 0.
func Normalize(s string) string {
	parts := separators.Split(strings.TrimSpace(s), -1)
	h := clamp(leadingInt(parts, 0), 0, 23)
	m := clamp(leadingInt(parts, 1), 0, 59)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Display renders a normalized time for humans: hour without leading zero.
// Display("09:05") == "9:05".
func Display(normalized string) string {
	if normalized == "" {
		normalized = "0:0"
	}
	parts := strings.Split(normalized, ":")
	h := leadingInt(parts, 0)
	m := leadingInt(parts, 1)
	return fmt.Sprintf("%d:%02d", h, m)
}

// Countdown renders the remaining duration as "M:SS". Anything at or below
// zero renders "0:00".
func Countdown(remaining time.Duration) string {
	if remaining <= 0 {
		return "0:00"
	}
	secs := int64((remaining + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Of returns the normalized "HH:MM" of t in loc.
func Of(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// LeadingInt parses an optional sign and the leading digits of s the way a
// lenient form parser would ("7abc" -> 7). A digit run too long for an int
// saturates. ok is false when s has no leading digits.
func LeadingInt(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

// leadingInt reads part i, 0 when missing or non-numeric.
func leadingInt(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, _ := LeadingInt(parts[i])
	return n
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
