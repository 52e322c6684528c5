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

package csvimport

import (
	"fmt"
	"os"

	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/google/datagrid/core/tables"
)

// ParseRows parses rows written as a google.protobuf.ListValue in text
// format, one struct_value per row:
//
//	values { struct_value {
//	  fields { key: "name" value { string_value: "Ann" } }
//	  fields { key: "age" value { number_value: 31 } }
//	} }
func ParseRows(textproto []byte) (tables.Rows, error) {
	list := &structpb.ListValue{}
	if err := prototext.Unmarshal(textproto, list); err != nil {
		return nil, fmt.Errorf("failed to parse textproto: %w", err)
	}

	rows := make(tables.Rows, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("value %d is not a struct_value", i)
		}
		rows = append(rows, tables.Row(s.AsMap()))
	}
	return rows, nil
}

// ImportTextprotoFile reads rows from a textproto file.
func ImportTextprotoFile(path string) (tables.Rows, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return ParseRows(data)
}

// FormatRows writes rows as textproto, the inverse of ParseRows.
func FormatRows(rows tables.Rows) ([]byte, error) {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(rows))}
	for i, row := range rows {
		s, err := structpb.NewStruct(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		list.Values = append(list.Values, structpb.NewStructValue(s))
	}
	return prototext.MarshalOptions{Multiline: true}.Marshal(list)
}
