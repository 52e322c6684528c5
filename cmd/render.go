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
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/google/datagrid/core/dom"
	"github.com/google/datagrid/core/grid"
	"github.com/google/datagrid/core/query"
	"github.com/google/datagrid/core/server"
	"github.com/google/datagrid/core/tables"
)

type renderParams struct {
	grids  gridParams
	name   string
	search string
	limit  int
	format string
}

func newRenderCommand() *cobra.Command {
	params := &renderParams{}
	cmd := &cobra.Command{
		Use:   "render --name <grid>",
		Short: "Render one grid to standard output",
		Long: `Render one grid to standard output.

Formats:
  html  the grid element only
  page  the full HTML page, as served
  text  the displayed rows as an ASCII table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd.OutOrStdout(), params, cmd.Flags().Changed("search"))
		},
	}
	params.grids.addFlags(cmd)
	cmd.Flags().StringVar(&params.name, "name", "", "grid name")
	cmd.Flags().StringVar(&params.search, "search", "", "search value")
	cmd.Flags().IntVar(&params.limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&params.format, "format", "html", "output format (html, page, text)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func render(out io.Writer, params *renderParams, hasSearch bool) error {
	grids, err := params.grids.manager()
	if err != nil {
		return err
	}
	srv, err := server.NewServer(grids)
	if err != nil {
		return err
	}

	q := &query.Query{
		Path:      server.GridPath,
		Grid:      params.name,
		Search:    params.search,
		HasSearch: hasSearch,
		Limit:     max(params.limit, 0),
	}

	switch params.format {
	case "page":
		u, err := url.Parse(q.ToURL())
		if err != nil {
			return err
		}
		result := srv.HandleGridRequest(out, u, func(string, string) {})
		if result == nil {
			return nil
		}
		if result.Error != nil {
			return result.Error
		}
		return errors.New(result.Message)
	case "html", "text":
		g, err := srv.BuildGrid(q, server.NewTimingCollector())
		if err != nil {
			return err
		}
		if params.format == "text" {
			_, err = io.WriteString(out, gridText(g))
			return err
		}
		html, err := dom.OuterHTML(g.Tree().Container)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, html)
		return err
	default:
		return fmt.Errorf("unknown format %q", params.format)
	}
}

// gridText renders the displayed rows of g with its visible columns.
func gridText(g *grid.Grid) string {
	var cols []tables.ASCIIColumn
	for _, c := range g.Config().VisibleColumns() {
		cols = append(cols, tables.ASCIIColumn{
			Name:       c.Name,
			Label:      c.Label,
			AlignRight: c.CellAlign() == "right",
		})
	}
	return tables.ToASCII(cols, g.Tree().Rows)
}
