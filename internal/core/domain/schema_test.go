package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaVersion_IsValid(t *testing.T) {
	for _, s := range AllSchemas() {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, SchemaVersion("v3").IsValid())
	assert.False(t, SchemaVersion("").IsValid())
}

func TestSchemaVersion_DefaultPath(t *testing.T) {
	tests := []struct {
		schema SchemaVersion
		want   string
	}{
		{SchemaV1, "/api/v1/ClipboardItem"},
		{SchemaV2, "/api/v2/Item"},
		{SchemaV2URLPath, "/api/v2/Item"},
		{"v3", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.schema), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schema.DefaultPath())
		})
	}
}

func TestSchemaVersion_Description(t *testing.T) {
	for _, s := range AllSchemas() {
		assert.NotEqual(t, unknownDescription, s.Description())
	}
	assert.Equal(t, unknownDescription, SchemaVersion("v3").Description())
}

func TestAllSchemas(t *testing.T) {
	assert.Equal(t, []SchemaVersion{SchemaV1, SchemaV2, SchemaV2URLPath}, AllSchemas())
}
