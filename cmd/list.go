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

package cmd

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/google/datagrid/core/tables"
)

func newListCommand() *cobra.Command {
	params := &gridParams{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the grids with their row and column counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return list(cmd.OutOrStdout(), params)
		},
	}
	params.addFlags(cmd)
	return cmd
}

func list(out io.Writer, params *gridParams) error {
	grids, err := params.manager()
	if err != nil {
		return err
	}

	var rows tables.Rows
	for _, name := range grids.Names() {
		def, err := grids.Definition(name)
		if err != nil {
			return err
		}
		data, err := grids.LoadData(name)
		if err != nil {
			return err
		}
		columns := len(def.Columns)
		if columns == 0 {
			columns = len(data.Columns)
		}
		rows = append(rows, tables.Row{
			"name":    name,
			"title":   def.DisplayTitle(),
			"source":  def.SourceType(),
			"rows":    strconv.Itoa(len(data.Rows)),
			"columns": strconv.Itoa(columns),
		})
	}

	cols := []tables.ASCIIColumn{
		{Name: "name", Label: "Name"},
		{Name: "title", Label: "Title"},
		{Name: "source", Label: "Source"},
		{Name: "rows", Label: "Rows", AlignRight: true},
		{Name: "columns", Label: "Columns", AlignRight: true},
	}
	_, err = io.WriteString(out, tables.ToASCII(cols, rows))
	return err
}
