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

// Package cmd implements the datagrid command line.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/google/datagrid/datasources"
	"github.com/google/datagrid/demo"
)

// RootCommand is the base CLI command that all subcommands are added to.
var RootCommand = newRootCommand()

type rootParams struct {
	logLevel  string
	logFormat string
}

func newRootCommand() *cobra.Command {
	params := &rootParams{}
	root := &cobra.Command{
		Use:           path.Base(os.Args[0]),
		Short:         "Searchable, paginated HTML data grids",
		Long:          "Serve or render HTML data grids defined in YAML files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLogging(logrus.StandardLogger(), cmd.ErrOrStderr(), params.logLevel, params.logFormat)
		},
	}
	root.PersistentFlags().StringVar(&params.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&params.logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(newServeCommand())
	root.AddCommand(newRenderCommand())
	root.AddCommand(newListCommand())
	return root
}

func configureLogging(logger *logrus.Logger, out io.Writer, level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	logger.SetOutput(out)

	switch format {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

// gridParams selects where grid definitions come from.
type gridParams struct {
	dir  string
	demo bool
}

func (p *gridParams) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.dir, "grids", "", "directory of YAML grid definitions")
	cmd.Flags().BoolVar(&p.demo, "demo", false, "include the demo grids")
}

// manager loads the definitions. Without a directory the demo grids are
// used.
func (p *gridParams) manager() (*datasources.Manager, error) {
	m := datasources.NewManager()
	if p.dir != "" {
		names, err := m.LoadDirectory(p.dir)
		if err != nil {
			return nil, err
		}
		logrus.WithFields(logrus.Fields{"dir": p.dir, "grids": len(names)}).Debug("loaded grid definitions")
	}
	if p.demo || p.dir == "" {
		if err := demo.Register(m); err != nil {
			return nil, fmt.Errorf("demo grids: %w", err)
		}
	}
	return m, nil
}
