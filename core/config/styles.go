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

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Style is the style directive for one logical element. CSSText replaces the
// whole style attribute; Properties are applied one by one afterwards.
type Style struct {
	CSSText    string
	Properties map[string]string
}

// UnmarshalYAML accepts either a css text scalar or a property mapping.
func (s *Style) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		s.CSSText = value.Value
		return nil
	case yaml.MappingNode:
		return value.Decode(&s.Properties)
	default:
		return fmt.Errorf("line %d: style must be a string or a mapping", value.Line)
	}
}

// Styles maps a logical element name (e.g. "table", "searchDiv") to its style.
type Styles map[string]Style

// ClassList is a list of CSS classes.
type ClassList []string

// UnmarshalYAML accepts either a space separated string or a sequence.
func (c *ClassList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*c = strings.Fields(value.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*c = list
		return nil
	default:
		return fmt.Errorf("line %d: class names must be a string or a sequence", value.Line)
	}
}

// ClassNames maps a logical element name to the classes added to it.
type ClassNames map[string]ClassList

// Attributes maps a logical element name to extra attributes.
type Attributes map[string]map[string]string
