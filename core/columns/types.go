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

	"gopkg.in/yaml.v3"
)

// Type is the value type of an imported column.
type Type int

const (
	// TypeAuto detects the type from the data.
	TypeAuto Type = iota
	TypeString
	TypeInt64
	TypeFloat64
	TypeBool
	TypeDatetime
	TypeDuration
)

// String returns the string representation of the column type.
func (t Type) String() string {
	switch t {
	case TypeAuto:
		return "auto"
	case TypeString:
		return "string"
	case TypeInt64:
		return "int64"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	case TypeDatetime:
		return "datetime"
	case TypeDuration:
		return "duration"
	default:
		return "unknown"
	}
}

// Numeric reports whether values of t are numbers.
func (t Type) Numeric() bool {
	return t == TypeInt64 || t == TypeFloat64
}

// ParseType parses a type name as written in grid definitions.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return TypeAuto, nil
	case "string", "text":
		return TypeString, nil
	case "int", "int64", "integer":
		return TypeInt64, nil
	case "float", "float64", "number":
		return TypeFloat64, nil
	case "bool", "boolean":
		return TypeBool, nil
	case "datetime", "date", "time":
		return TypeDatetime, nil
	case "duration":
		return TypeDuration, nil
	default:
		return TypeAuto, fmt.Errorf("unknown column type %q", s)
	}
}

// UnmarshalYAML reads a type name.
func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseBool parses a string as a boolean value.
// Accepts: true/false, 1/0, yes/no, t/f, y/n (case-insensitive).
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "t", "y":
		return true, nil
	case "false", "0", "no", "f", "n", "":
		return false, nil
	default:
		return false, fmt.Errorf("cannot parse %q as boolean", s)
	}
}

// ParseValue converts a raw cell to a value of type t. Empty cells are nil
// for every type but string.
func ParseValue(t Type, s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" && t != TypeString {
		return nil, nil
	}
	switch t {
	case TypeInt64:
		return strconv.ParseInt(s, 10, 64)
	case TypeFloat64:
		return strconv.ParseFloat(s, 64)
	case TypeBool:
		return ParseBool(s)
	case TypeDatetime:
		t, err := ParseDatetime(s, time.UTC)
		if err != nil {
			return nil, err
		}
		return Datetime{Time: t}, nil
	case TypeDuration:
		d, err := ParseDuration(s)
		if err != nil {
			return nil, err
		}
		return Duration{D: d}, nil
	default:
		return s, nil
	}
}

// DetectType returns the narrowest type every non-empty sample parses as.
// Columns with no non-empty samples are strings. Durations are never
// detected.
func DetectType(samples []string) Type {
	candidates := []Type{TypeInt64, TypeFloat64, TypeBool, TypeDatetime}
	seen := false
	for _, s := range samples {
		if strings.TrimSpace(s) == "" {
			continue
		}
		seen = true
		kept := candidates[:0]
		for _, t := range candidates {
			if _, err := ParseValue(t, s); err == nil {
				kept = append(kept, t)
			}
		}
		candidates = kept
		if len(candidates) == 0 {
			return TypeString
		}
	}
	if !seen {
		return TypeString
	}
	return candidates[0]
}
