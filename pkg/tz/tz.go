package tz

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Moscow is the default reference zone for reminder scans (UTC+3, no DST).
var Moscow = time.FixedZone("UTC+03:00", 3*60*60)

// ParseOffset parses a fixed UTC offset such as "+03:00", "-5" or "+0530".
// An empty string yields Moscow.
func ParseOffset(s string) (*time.Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Moscow, nil
	}
	sign := 1
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	}
	hh, mm := s, "0"
	if h, m, ok := strings.Cut(s, ":"); ok {
		hh, mm = h, m
	} else if len(s) == 4 {
		hh, mm = s[:2], s[2:]
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 14 {
		return nil, fmt.Errorf("tz: offset invalide %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return nil, fmt.Errorf("tz: offset invalide %q", s)
	}
	prefix := "+"
	if sign < 0 {
		prefix = "-"
	}
	return time.FixedZone(fmt.Sprintf("UTC%s%02d:%02d", prefix, h, m), sign*(h*3600+m*60)), nil
}
