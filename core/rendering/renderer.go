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

package rendering

import (
	"embed"
	"io"

	"github.com/google/safehtml/template"

	"github.com/google/datagrid/core/views"
)

//go:embed templates/*
var templateFS embed.FS

// PageRenderer handles rendering of grid pages to HTML
type PageRenderer struct {
	pageTemplate    *template.Template
	landingTemplate *template.Template
}

// NewPageRenderer creates a new page renderer
func NewPageRenderer() (*PageRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	// Parse the grid page template
	pageTemplate, err := template.New("page.html").ParseFS(trustedFS, "templates/page.html")
	if err != nil {
		return nil, err
	}

	// Parse the landing page template
	landingTemplate, err := template.New("landing.html").ParseFS(trustedFS, "templates/landing.html")
	if err != nil {
		return nil, err
	}

	return &PageRenderer{
		pageTemplate:    pageTemplate,
		landingTemplate: landingTemplate,
	}, nil
}

// Render renders a PageViewModel to the provided writer
func (r *PageRenderer) Render(w io.Writer, vm views.PageViewModel) error {
	return r.pageTemplate.Execute(w, vm)
}

// RenderLanding renders a LandingViewModel to the provided writer
func (r *PageRenderer) RenderLanding(w io.Writer, vm views.LandingViewModel) error {
	return r.landingTemplate.Execute(w, vm)
}
