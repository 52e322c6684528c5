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

package protoloader

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/google/datagrid/core/columns"
	"github.com/google/datagrid/core/tables"
)

func scalar(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(name),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     typ.Enum(),
	}
}

func repeated(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(name),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String(typeName),
	}
}

// shopFile describes shop.Shop > customers > orders.
func shopFile() *descriptorpb.FileDescriptorProto {
	status := scalar("status", 4, descriptorpb.FieldDescriptorProto_TYPE_ENUM)
	status.TypeName = proto.String(".shop.Status")
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("shop.proto"),
		Package: proto.String("shop"),
		Syntax:  proto.String("proto3"),
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name: proto.String("Status"),
			Value: []*descriptorpb.EnumValueDescriptorProto{
				{Name: proto.String("STATUS_UNKNOWN"), Number: proto.Int32(0)},
				{Name: proto.String("SHIPPED"), Number: proto.Int32(1)},
			},
		}},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Order"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("id", 1, descriptorpb.FieldDescriptorProto_TYPE_INT64),
					scalar("name", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalar("total", 3, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE),
					status,
				},
			},
			{
				Name: proto.String("Customer"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("name", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalar("vip", 2, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
					repeated("orders", 3, ".shop.Order"),
				},
			},
			{
				Name: proto.String("Shop"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("name", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					repeated("customers", 2, ".shop.Customer"),
				},
			},
		},
	}
}

const shopText = `
name: "Corner"
customers {
  name: "Ann"
  vip: true
  orders { id: 1 name: "lamp" total: 24.5 status: SHIPPED }
  orders { id: 2 name: "desk" total: 540 }
}
customers { name: "Bob" }
`

func newShopLoader(t *testing.T) *Loader {
	t.Helper()
	fd, err := protodesc.NewFile(shopFile(), nil)
	require.NoError(t, err)
	registry := new(protoregistry.Files)
	require.NoError(t, registry.RegisterFile(fd))
	return NewLoader(registry)
}

func TestExtractRows(t *testing.T) {
	l := newShopLoader(t)
	msg, err := l.ParseTextproto([]byte(shopText), "shop.Shop")
	require.NoError(t, err)

	rows, cols := ExtractRows(msg)

	wantCols := []columns.Column{
		{Name: "name", Label: "name"},
		{Name: "customers_name", Label: "customers_name"},
		{Name: "vip", Label: "vip"},
		{Name: "id", Label: "id", RowAlign: "right"},
		{Name: "orders_name", Label: "orders_name"},
		{Name: "total", Label: "total", RowAlign: "right"},
		{Name: "status", Label: "status"},
	}
	if diff := cmp.Diff(wantCols, cols); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	want := tables.Rows{
		{"name": "Corner", "customers_name": "Ann", "vip": true, "id": int64(1), "orders_name": "lamp", "total": 24.5, "status": "SHIPPED"},
		{"name": "Corner", "customers_name": "Ann", "vip": true, "id": int64(2), "orders_name": "desk", "total": 540.0, "status": "STATUS_UNKNOWN"},
		{"name": "Corner", "customers_name": "Bob", "vip": false, "id": nil, "orders_name": nil, "total": nil, "status": nil},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBinary(t *testing.T) {
	l := newShopLoader(t)
	msg, err := l.ParseTextproto([]byte(shopText), "shop.Shop")
	require.NoError(t, err)
	data, err := proto.Marshal(msg.Interface())
	require.NoError(t, err)

	decoded, err := l.ParseBinary(data, "shop.Shop")
	require.NoError(t, err)
	rows, _ := ExtractRows(decoded)
	assert.Len(t, rows, 3)
}

func TestRegisterDescriptorSet(t *testing.T) {
	set := &descriptorpb.FileDescriptorSet{File: []*descriptorpb.FileDescriptorProto{shopFile()}}
	data, err := proto.Marshal(set)
	require.NoError(t, err)

	l := NewLoader(new(protoregistry.Files))
	assert.Empty(t, l.Messages())

	require.NoError(t, l.RegisterDescriptorSet(data))
	// Registering the same files again is a no-op.
	require.NoError(t, l.RegisterDescriptorSet(data))
	assert.Equal(t, []string{"shop.Customer", "shop.Order", "shop.Shop"}, l.Messages())

	assert.Error(t, l.RegisterDescriptorSet([]byte("not a descriptor set")))
}

func TestParseErrors(t *testing.T) {
	l := newShopLoader(t)

	_, err := l.ParseTextproto([]byte(`name: "x"`), "unknown.Message")
	assert.Error(t, err)

	_, err = l.ParseTextproto([]byte(`name: "x"`), "shop.Status")
	assert.ErrorContains(t, err, "not a message type")

	_, err = l.ParseTextproto([]byte(`color: "red"`), "shop.Shop")
	assert.Error(t, err)
}

func TestFindLinearHierarchy(t *testing.T) {
	l := newShopLoader(t)
	msg, err := l.ParseTextproto(nil, "shop.Order")
	require.NoError(t, err)

	levels := FindLinearHierarchy(msg.Descriptor())
	require.Len(t, levels, 1)
	assert.Nil(t, levels[0].FieldDesc)
	assert.Len(t, levels[0].ScalarFields, 4)

	rows, _ := ExtractRows(msg)
	assert.Equal(t, tables.Rows{{"id": int64(0), "name": "", "total": 0.0, "status": "STATUS_UNKNOWN"}}, rows)
}
