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

package config

import "strings"

// Text label keys.
const (
	TextNoData            = "noData"
	TextLimitsPrefix      = "limitsPrefix"
	TextLimitsSuffix      = "limitsSuffix"
	TextSearchPlaceholder = "searchPlaceholder"
	TextSearchPrefix      = "searchPrefix"
)

// Texts maps a label key to its text.
type Texts map[string]string

// DefaultTexts returns the built-in labels.
func DefaultTexts() Texts {
	return Texts{
		TextNoData:            "No data",
		TextLimitsPrefix:      "Show",
		TextLimitsSuffix:      "rows per page",
		TextSearchPlaceholder: "Search...",
		TextSearchPrefix:      "Search:",
	}
}

// withDefaults overlays t on the default labels.
func (t Texts) withDefaults() Texts {
	merged := DefaultTexts()
	for key, text := range t {
		merged[key] = text
	}
	return merged
}

// Get returns the text for key.
func (t Texts) Get(key string) string {
	return t[key]
}

// Visible returns the text for key and whether it is non-blank.
// Blocks labelled with a blank text are not rendered.
func (t Texts) Visible(key string) (string, bool) {
	text := t[key]
	return text, strings.TrimSpace(text) != ""
}
