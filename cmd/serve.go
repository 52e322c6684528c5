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
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/google/datagrid/core/server"
)

const shutdownTimeout = 5 * time.Second

type serveParams struct {
	grids    gridParams
	addr     string
	title    string
	subtitle string
}

func newServeCommand() *cobra.Command {
	params := &serveParams{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the grids over HTTP",
		Long: `Serve a landing page listing the grids and one page per grid.

Grid pages take the grid name, a search value and a page size as query
parameters: /grid?name=orders&search=lamp&limit=10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, params)
		},
	}
	params.grids.addFlags(cmd)
	cmd.Flags().StringVar(&params.addr, "addr", "127.0.0.1:8097", "listen address")
	cmd.Flags().StringVar(&params.title, "title", "Data grids", "landing page title")
	cmd.Flags().StringVar(&params.subtitle, "subtitle", "", "landing page subtitle")
	return cmd
}

func serve(ctx context.Context, params *serveParams) error {
	grids, err := params.grids.manager()
	if err != nil {
		return err
	}
	srv, err := server.NewServer(grids)
	if err != nil {
		return err
	}
	srv.SetTitle(params.title, params.subtitle)

	httpServer := &http.Server{
		Addr:              params.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":  params.addr,
			"grids": grids.Names(),
		}).Info("serving grids")
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
