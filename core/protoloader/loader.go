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

// Package protoloader flattens protobuf messages into grid rows. Message
// types are resolved from a registry that descriptor sets can be added to.
package protoloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/google/datagrid/core/columns"
	"github.com/google/datagrid/core/tables"
)

// Loader parses protobuf data using the descriptors of its registry.
type Loader struct {
	registry *protoregistry.Files
}

// NewLoader creates a new Loader with the given proto registry.
func NewLoader(registry *protoregistry.Files) *Loader {
	return &Loader{registry: registry}
}

// RegisterDescriptorSet adds the files of a serialized FileDescriptorSet
// to the registry. Files already registered are skipped.
func (l *Loader) RegisterDescriptorSet(data []byte) error {
	fds := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(data, fds); err != nil {
		return fmt.Errorf("failed to unmarshal descriptor set: %w", err)
	}
	files, err := protodesc.NewFiles(fds)
	if err != nil {
		return fmt.Errorf("failed to create file descriptors: %w", err)
	}

	var registerErr error
	files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		if _, err := l.registry.FindFileByPath(fd.Path()); err == nil {
			return true
		}
		if err := l.registry.RegisterFile(fd); err != nil {
			registerErr = err
			return false
		}
		return true
	})
	return registerErr
}

func (l *Loader) newMessage(messageName string) (*dynamicpb.Message, error) {
	desc, err := l.registry.FindDescriptorByName(protoreflect.FullName(messageName))
	if err != nil {
		return nil, fmt.Errorf("message %q not found in registry: %w", messageName, err)
	}
	msgDesc, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%q is not a message type", messageName)
	}
	return dynamicpb.NewMessage(msgDesc), nil
}

// ParseTextproto parses protobuf text format into a dynamic message.
func (l *Loader) ParseTextproto(data []byte, messageName string) (protoreflect.Message, error) {
	msg, err := l.newMessage(messageName)
	if err != nil {
		return nil, err
	}
	opts := prototext.UnmarshalOptions{Resolver: l}
	if err := opts.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to parse textproto: %w", err)
	}
	return msg.ProtoReflect(), nil
}

// ParseBinary parses protobuf wire format into a dynamic message.
func (l *Loader) ParseBinary(data []byte, messageName string) (protoreflect.Message, error) {
	msg, err := l.newMessage(messageName)
	if err != nil {
		return nil, err
	}
	opts := proto.UnmarshalOptions{Resolver: l}
	if err := opts.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to parse binary proto: %w", err)
	}
	return msg.ProtoReflect(), nil
}

// FindMessageByName implements protoregistry.MessageTypeResolver
func (l *Loader) FindMessageByName(name protoreflect.FullName) (protoreflect.MessageType, error) {
	desc, err := l.registry.FindDescriptorByName(name)
	if err != nil {
		return nil, err
	}
	msgDesc, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%q is not a message type", name)
	}
	return dynamicpb.NewMessageType(msgDesc), nil
}

// FindMessageByURL implements protoregistry.MessageTypeResolver
func (l *Loader) FindMessageByURL(url string) (protoreflect.MessageType, error) {
	name := url
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		name = url[i+1:]
	}
	return l.FindMessageByName(protoreflect.FullName(name))
}

// FindExtensionByName implements protoregistry.ExtensionTypeResolver
func (l *Loader) FindExtensionByName(name protoreflect.FullName) (protoreflect.ExtensionType, error) {
	return nil, protoregistry.NotFound
}

// FindExtensionByNumber implements protoregistry.ExtensionTypeResolver
func (l *Loader) FindExtensionByNumber(message protoreflect.FullName, field protoreflect.FieldNumber) (protoreflect.ExtensionType, error) {
	return nil, protoregistry.NotFound
}

// Messages returns the full names of the top-level messages in the registry, sorted.
func (l *Loader) Messages() []string {
	var messages []string
	l.registry.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		msgs := fd.Messages()
		for i := 0; i < msgs.Len(); i++ {
			messages = append(messages, string(msgs.Get(i).FullName()))
		}
		return true
	})
	slices.Sort(messages)
	return messages
}

// HierarchyLevel represents one level in a linear message hierarchy.
type HierarchyLevel struct {
	// FieldDesc is the repeated message field leading to the next level (nil for leaf)
	FieldDesc protoreflect.FieldDescriptor
	// ScalarFields are non-message, non-repeated fields at this level
	ScalarFields []protoreflect.FieldDescriptor
}

// FindLinearHierarchy follows the first repeated message field of each
// level down to a message without one. Returns the levels from root to leaf.
func FindLinearHierarchy(msgDesc protoreflect.MessageDescriptor) []HierarchyLevel {
	var levels []HierarchyLevel
	visited := make(map[protoreflect.FullName]bool)
	for current := msgDesc; current != nil; {
		visited[current.FullName()] = true
		level := HierarchyLevel{}
		var next protoreflect.MessageDescriptor

		fields := current.Fields()
		for i := 0; i < fields.Len(); i++ {
			fd := fields.Get(i)
			switch {
			case fd.Kind() == protoreflect.MessageKind || fd.Kind() == protoreflect.GroupKind:
				if fd.Cardinality() == protoreflect.Repeated && !fd.IsMap() && level.FieldDesc == nil {
					level.FieldDesc = fd
					next = fd.Message()
				}
			case fd.Cardinality() != protoreflect.Repeated:
				level.ScalarFields = append(level.ScalarFields, fd)
			}
		}

		// Recursive messages end the chain at their first repetition
		if next != nil && visited[next.FullName()] {
			level.FieldDesc = nil
			next = nil
		}
		levels = append(levels, level)
		current = next
	}
	return levels
}

// field is one output column.
type field struct {
	desc  protoreflect.FieldDescriptor
	name  string
	level int
}

// rowBuilder accumulates denormalized rows from a hierarchical message.
type rowBuilder struct {
	hierarchy []HierarchyLevel
	fields    [][]field // fields by hierarchy level
	current   tables.Row
	rows      tables.Rows
}

// newRowBuilder names a column after its field. A name used by an outer
// level is prefixed with the repeated field that leads to the inner one.
func newRowBuilder(hierarchy []HierarchyLevel) *rowBuilder {
	rb := &rowBuilder{
		hierarchy: hierarchy,
		fields:    make([][]field, len(hierarchy)),
		current:   make(tables.Row),
	}
	used := make(map[string]bool)
	for i, level := range hierarchy {
		for _, fd := range level.ScalarFields {
			name := string(fd.Name())
			if used[name] && i > 0 {
				name = string(hierarchy[i-1].FieldDesc.Name()) + "_" + name
			}
			used[name] = true
			rb.fields[i] = append(rb.fields[i], field{desc: fd, name: name, level: i})
		}
	}
	return rb
}

// Columns returns the grid columns in hierarchy order. Numeric columns
// are right aligned.
func (rb *rowBuilder) Columns() []columns.Column {
	var cols []columns.Column
	for _, level := range rb.fields {
		for _, f := range level {
			col := columns.Column{Name: f.name, Label: f.name}
			if isNumeric(f.desc.Kind()) {
				col.RowAlign = "right"
			}
			cols = append(cols, col)
		}
	}
	return cols
}

// clearFromLevel clears all column values at and below the given hierarchy level.
func (rb *rowBuilder) clearFromLevel(level int) {
	for i := level; i < len(rb.fields); i++ {
		for _, f := range rb.fields[i] {
			rb.current[f.name] = nil
		}
	}
}

func (rb *rowBuilder) emitRow() {
	rb.rows = append(rb.rows, maps.Clone(rb.current))
}

// walk visits the message at depth, emitting one row per leaf. A level
// whose repeated field is empty still emits a row with the inner columns
// cleared.
func (rb *rowBuilder) walk(msg protoreflect.Message, depth int) {
	level := rb.hierarchy[depth]
	for _, f := range rb.fields[depth] {
		rb.current[f.name] = cellValue(msg.Get(f.desc), f.desc)
	}

	if level.FieldDesc == nil || depth == len(rb.hierarchy)-1 {
		rb.emitRow()
		return
	}

	list := msg.Get(level.FieldDesc).List()
	if list.Len() == 0 {
		rb.clearFromLevel(depth + 1)
		rb.emitRow()
		return
	}
	for i := 0; i < list.Len(); i++ {
		rb.clearFromLevel(depth + 1)
		rb.walk(list.Get(i).Message(), depth+1)
	}
}

// ExtractRows flattens msg along its linear hierarchy into rows and the
// columns describing them.
func ExtractRows(msg protoreflect.Message) (tables.Rows, []columns.Column) {
	rb := newRowBuilder(FindLinearHierarchy(msg.Descriptor()))
	rb.walk(msg, 0)
	return rb.rows, rb.Columns()
}

func isNumeric(kind protoreflect.Kind) bool {
	switch kind {
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind,
		protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind,
		protoreflect.FloatKind, protoreflect.DoubleKind:
		return true
	}
	return false
}

// cellValue converts a scalar field value to a cell. Enums become their
// value names.
func cellValue(val protoreflect.Value, fd protoreflect.FieldDescriptor) any {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return val.Bool()
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return val.Int()
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return val.Uint()
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		return val.Float()
	case protoreflect.StringKind:
		return val.String()
	case protoreflect.BytesKind:
		return string(val.Bytes())
	case protoreflect.EnumKind:
		if enumVal := fd.Enum().Values().ByNumber(val.Enum()); enumVal != nil {
			return string(enumVal.Name())
		}
		return int64(val.Enum())
	default:
		return val.String()
	}
}
