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

package datasources

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	"github.com/google/datagrid/core/protoloader"
)

// ProtoLoader implements Loader for protobuf messages of any registered
// type. Nested repeated messages are flattened into one row per leaf.
//
// Required fields:
//   - path: Path to the data file (.textproto, .txtpb or binary)
//
// Required options:
//   - message: Fully qualified proto message name
//
// Optional options:
//   - descriptors: Path to a FileDescriptorSet, relative to the data file
//   - format: "textproto" or "binary" (inferred from the extension)
type ProtoLoader struct {
	mu     sync.Mutex
	loader *protoloader.Loader

	// Descriptor sets already registered, by path
	loaded map[string]bool
}

// NewProtoLoader creates a proto loader over registry. A nil registry
// starts from the files linked into the binary.
func NewProtoLoader(registry *protoregistry.Files) *ProtoLoader {
	if registry == nil {
		registry = new(protoregistry.Files)
		protoregistry.GlobalFiles.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
			_ = registry.RegisterFile(fd)
			return true
		})
	}
	return &ProtoLoader{
		loader: protoloader.NewLoader(registry),
		loaded: make(map[string]bool),
	}
}

// SourceType returns "proto".
func (l *ProtoLoader) SourceType() string {
	return "proto"
}

// Load parses the data file and flattens it into rows.
func (l *ProtoLoader) Load(src Source) (*Data, error) {
	if src.Path == "" {
		return nil, errors.New("path is required")
	}
	message := src.Options["message"]
	if message == "" {
		return nil, errors.New("message option is required")
	}

	// The registry is not safe for concurrent registration and lookup
	l.mu.Lock()
	defer l.mu.Unlock()

	if descriptors := src.Options["descriptors"]; descriptors != "" {
		if !filepath.IsAbs(descriptors) {
			descriptors = filepath.Join(filepath.Dir(src.Path), descriptors)
		}
		if err := l.registerDescriptors(descriptors); err != nil {
			return nil, err
		}
	}

	format := src.Options["format"]
	if format == "" {
		switch strings.ToLower(filepath.Ext(src.Path)) {
		case ".textproto", ".txtpb", ".pbtxt":
			format = "textproto"
		default:
			format = "binary"
		}
	}

	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read proto file: %w", err)
	}

	var msg protoreflect.Message
	switch format {
	case "textproto":
		msg, err = l.loader.ParseTextproto(data, message)
	case "binary":
		msg, err = l.loader.ParseBinary(data, message)
	default:
		return nil, fmt.Errorf("unknown format: %s (expected 'textproto' or 'binary')", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}

	rows, cols := protoloader.ExtractRows(msg)
	return &Data{Columns: cols, Rows: rows}, nil
}

func (l *ProtoLoader) registerDescriptors(path string) error {
	if l.loaded[path] {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read descriptor set: %w", err)
	}
	if err := l.loader.RegisterDescriptorSet(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	l.loaded[path] = true
	return nil
}
