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
	"testing"
	"time"
)

func TestParseDatetime(t *testing.T) {
	testCases := []struct {
		input   string
		wantErr bool
		check   func(time.Time) bool
	}{
		{"2024-01-15", false, func(t time.Time) bool { return t.Year() == 2024 && t.Month() == 1 && t.Day() == 15 }},
		{"2024-01-15T10:30:00Z", false, func(t time.Time) bool { return t.Hour() == 10 && t.Minute() == 30 }},
		{"2024-01-15 14:45:30", false, func(t time.Time) bool { return t.Hour() == 14 && t.Minute() == 45 }},
		{"2024/06/20", false, func(t time.Time) bool { return t.Month() == 6 && t.Day() == 20 }},
		{"", false, func(t time.Time) bool { return t.IsZero() }},
		{"null", false, func(t time.Time) bool { return t.IsZero() }},
		{"invalid", true, nil},
		// Unix timestamp (seconds)
		{"1704067200", false, func(t time.Time) bool { return t.Year() == 2024 && t.Month() == 1 && t.Day() == 1 }},
		// Unix timestamp (milliseconds)
		{"1704067200000", false, func(t time.Time) bool { return t.Year() == 2024 && t.Month() == 1 && t.Day() == 1 }},
	}

	for _, tc := range testCases {
		got, err := ParseDatetime(tc.input, time.UTC)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDatetime(%q) expected error, got %v", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDatetime(%q) error: %v", tc.input, err)
			continue
		}
		if tc.check != nil && !tc.check(got) {
			t.Errorf("ParseDatetime(%q) = %v, failed check", tc.input, got)
		}
	}
}

func TestDatetimeString(t *testing.T) {
	d := Datetime{Time: time.Date(2024, 7, 15, 14, 30, 45, 0, time.UTC)}
	if got := d.String(); got != "2024-07-15 14:30:45" {
		t.Errorf("String() = %q, want the default layout", got)
	}
	if got := WithFormat(d, DatetimeFormatISO).(Datetime).String(); got != "2024-07-15T14:30:45Z" {
		t.Errorf("String() with ISO layout = %q", got)
	}
	if got := (Datetime{}).String(); got != "" {
		t.Errorf("zero datetime = %q, want empty", got)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		hasError bool
	}{
		// Standard Go format
		{"1h", time.Hour, false},
		{"30m", 30 * time.Minute, false},
		{"1h30m", 90 * time.Minute, false},
		{"2h30m45s", 2*time.Hour + 30*time.Minute + 45*time.Second, false},

		// Extended format with days
		{"1d", 24 * time.Hour, false},
		{"1d12h", 36 * time.Hour, false},
		{"2d3h30m", 2*24*time.Hour + 3*time.Hour + 30*time.Minute, false},

		// Negative durations
		{"-1h", -time.Hour, false},
		{"-1d12h", -36 * time.Hour, false},

		// Edge cases
		{"0s", 0, false},
		{"", 0, false},
		{"  1h  ", time.Hour, false},

		// Invalid input
		{"invalid", 0, true},
		{"1x", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			result, err := ParseDuration(tc.input)
			if tc.hasError {
				if err == nil {
					t.Errorf("Expected error for input '%s', got nil", tc.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for input '%s': %v", tc.input, err)
			}
			if result != tc.expected {
				t.Errorf("For input '%s': expected %v, got %v", tc.input, tc.expected, result)
			}
		})
	}
}

func TestFormatDurationCompact(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "0s"},
		{time.Minute, "1m0s"},
		{90 * time.Minute, "1h30m0s"},
		{24 * time.Hour, "1d"},
		{25 * time.Hour, "1d1h0m0s"},
		{-time.Hour, "-1h0m0s"},
		{-24 * time.Hour, "-1d"},
		{500 * time.Millisecond, "500ms"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := (Duration{D: tc.input}).String(); got != tc.expected {
				t.Errorf("For duration %v: expected '%s', got '%s'", tc.input, tc.expected, got)
			}
		})
	}
}

func TestFormatDurationVerbose(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "0 seconds"},
		{time.Second, "1 second"},
		{2 * time.Second, "2 seconds"},
		{1500 * time.Millisecond, "1.500 seconds"},
		{time.Minute, "1 minute"},
		{2 * time.Hour, "2 hours"},
		{24 * time.Hour, "1 day"},
		{48 * time.Hour, "2 days"},
		{90 * time.Minute, "1 hour 30 minutes"},
		{2*time.Hour + 30*time.Minute + 45*time.Second, "2 hours 30 minutes 45 seconds"},
		{-time.Hour, "-1 hour"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			d := WithFormat(Duration{D: tc.input}, DurationFormatVerbose)
			if got := d.(Duration).String(); got != tc.expected {
				t.Errorf("For duration %v: expected '%s', got '%s'", tc.input, tc.expected, got)
			}
		})
	}
}
