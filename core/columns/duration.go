/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package columns

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DurationFormatVerbose is the format name of Duration.Verbose.
const DurationFormatVerbose = "verbose"

// Duration is a duration cell. It displays compactly ("2d3h0m0s") unless
// Verbose is set ("2 days 3 hours").
type Duration struct {
	D       time.Duration
	Verbose bool
}

func (d Duration) String() string {
	if d.Verbose {
		return formatDurationVerbose(d.D)
	}
	return formatDurationCompact(d.D)
}

// formatDurationCompact returns a compact representation like "2h30m0s" or "3d4h0m0s".
func formatDurationCompact(d time.Duration) string {
	if d == 0 {
		return "0s"
	}

	var result strings.Builder
	if d < 0 {
		result.WriteString("-")
		d = -d
	}

	days := d / (24 * time.Hour)
	d = d % (24 * time.Hour)
	if days > 0 {
		result.WriteString(strconv.FormatInt(int64(days), 10))
		result.WriteString("d")
		if d == 0 {
			return result.String()
		}
	}
	result.WriteString(d.String())
	return result.String()
}

func plural(n time.Duration, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// formatDurationVerbose returns a human-readable representation like "2 hours 30 minutes".
func formatDurationVerbose(d time.Duration) string {
	if d == 0 {
		return "0 seconds"
	}

	negative := d < 0
	if negative {
		d = -d
	}

	var parts []string
	for _, u := range []struct {
		size time.Duration
		name string
	}{
		{24 * time.Hour, "day"},
		{time.Hour, "hour"},
		{time.Minute, "minute"},
	} {
		if n := d / u.size; n > 0 {
			parts = append(parts, plural(n, u.name))
		}
		d %= u.size
	}

	seconds := d / time.Second
	frac := d % time.Second
	switch {
	case frac != 0:
		total := float64(seconds) + float64(frac)/float64(time.Second)
		parts = append(parts, fmt.Sprintf("%.3f seconds", total))
	case seconds > 0:
		parts = append(parts, plural(seconds, "second"))
	}

	result := strings.Join(parts, " ")
	if negative {
		return "-" + result
	}
	return result
}

// ParseDuration parses a duration string, supporting Go format plus days
// ("3d2h30m").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	var total time.Duration
	if idx := strings.Index(s, "d"); idx != -1 {
		daysStr := s[:idx]
		days, err := strconv.ParseInt(daysStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid days in duration: %s", daysStr)
		}
		total = time.Duration(days) * 24 * time.Hour
		s = s[idx+1:]
	}

	if s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %w", err)
		}
		total += d
	}

	if negative {
		total = -total
	}
	return total, nil
}

// WithFormat applies a display format to a parsed cell: a time layout for
// Datetime values, DurationFormatVerbose for Duration values. Other values
// are returned unchanged.
func WithFormat(v any, format string) any {
	switch val := v.(type) {
	case Datetime:
		val.Layout = format
		return val
	case Duration:
		val.Verbose = format == DurationFormatVerbose
		return val
	default:
		return v
	}
}
