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

package demo

import (
	"fmt"
	"strconv"

	"github.com/google/datagrid/core/columns"
	"github.com/google/datagrid/core/tables"
	"github.com/google/datagrid/datasources"
)

// SourceGenerated is the source type of the synthetic transactions table.
const SourceGenerated = "generated"

// Generated table shape; cardinality drops from users to categories.
const (
	defaultTransactions = 1000
	maxTransactions     = 1_000_000
	numUsers            = 800
	numProducts         = 50
	numCategories       = 12
)

var statuses = []string{"pending", "completed", "cancelled", "processing"}

var categories = []string{
	"Books", "Electronics", "Garden", "Grocery", "Health", "Home",
	"Kitchen", "Music", "Office", "Outdoor", "Sports", "Toys",
}

// GeneratedLoader produces a deterministic transactions table with many
// columns. Its "rows" option sets the row count.
type GeneratedLoader struct{}

// NewGeneratedLoader creates a generated-data loader.
func NewGeneratedLoader() *GeneratedLoader {
	return &GeneratedLoader{}
}

// SourceType returns "generated".
func (l *GeneratedLoader) SourceType() string {
	return SourceGenerated
}

// Load generates the rows.
func (l *GeneratedLoader) Load(src datasources.Source) (*datasources.Data, error) {
	n := defaultTransactions
	if s := src.Options["rows"]; s != "" {
		var err error
		n, err = strconv.Atoi(s)
		if err != nil || n < 0 || n > maxTransactions {
			return nil, fmt.Errorf("invalid rows option %q", s)
		}
	}
	return &datasources.Data{
		Columns: transactionColumns(),
		Rows:    Transactions(n),
	}, nil
}

func transactionColumns() []columns.Column {
	right := func(name, label string) columns.Column {
		return columns.Column{Name: name, Label: label, Align: "right", RowAlign: "right", Width: "8em"}
	}
	return []columns.Column{
		right("txn_id", "Transaction ID"),
		right("user_id", "User ID"),
		right("product_id", "Product ID"),
		{Name: "category", Label: "Category", Width: "10em"},
		right("amount", "Amount"),
		{Name: "status", Label: "Status", Width: "10em"},
		{Name: "region", Label: "Region", Width: "10em"},
		{Name: "channel", Label: "Channel", Width: "10em"},
		{Name: "reference", Label: "Reference", Width: "16em"},
	}
}

// Transactions returns n generated transaction rows. The same n always
// yields the same rows.
func Transactions(n int) tables.Rows {
	regions := []string{"EMEA", "APAC", "AMER"}
	channels := []string{"web", "store", "phone"}

	rows := make(tables.Rows, n)
	for i := range n {
		category := i % numCategories
		if i%7 == 0 { // category 0 is the most common
			category = 0
		}
		rows[i] = tables.Row{
			"txn_id":     int64(i),
			"user_id":    int64(i % numUsers),
			"product_id": int64(i % numProducts),
			"category":   categories[category],
			"amount":     int64(10 + i%1000),
			"status":     statuses[i%len(statuses)],
			"region":     regions[i%len(regions)],
			"channel":    channels[(i/3)%len(channels)],
			"reference":  fmt.Sprintf("TX-%06d", i),
		}
	}
	return rows
}
