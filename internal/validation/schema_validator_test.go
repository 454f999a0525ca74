package validation

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dropSchemaPath = "schemas/drop.schema.json"

const dropSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"item_id": {"type": "string", "minLength": 1},
		"weight": {"type": "number", "minimum": 0},
		"rarity": {"enum": ["legendary", "red", "blue", "common"]}
	},
	"required": ["item_id", "weight"]
}`

func newTestValidator() *validator {
	fsys := fstest.MapFS{
		dropSchemaPath: &fstest.MapFile{Data: []byte(dropSchema)},
	}
	return NewFSSchemaValidator(fsys).(*validator)
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name     string
		data     string
		errorMsg string
	}{
		{name: "valid drop", data: `{"item_id": "6", "weight": 64}`},
		{name: "zero weight is allowed", data: `{"item_id": "6", "weight": 0, "rarity": "common"}`},
		{name: "missing weight", data: `{"item_id": "6"}`, errorMsg: "required"},
		{name: "negative weight", data: `{"item_id": "6", "weight": -1}`, errorMsg: "/weight"},
		{name: "wrong type", data: `{"item_id": 6, "weight": 1}`, errorMsg: "/item_id"},
		{name: "unknown rarity", data: `{"item_id": "1", "weight": 1, "rarity": "gold"}`, errorMsg: "enum"},
		{name: "invalid JSON", data: `{"item_id": }`, errorMsg: "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), dropSchemaPath)
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_ReportListsEveryLeaf(t *testing.T) {
	v := newTestValidator()

	err := v.ValidateBytes([]byte(`{"item_id": "", "weight": -1}`), dropSchemaPath)
	require.Error(t, err)

	var report *Report
	require.ErrorAs(t, err, &report)
	assert.Equal(t, dropSchemaPath, report.Schema)
	require.Len(t, report.Issues, 2)

	paths := []string{report.Issues[0].Path, report.Issues[1].Path}
	assert.ElementsMatch(t, []string{"/item_id", "/weight"}, paths)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestSchemaValidator_MissingSchema(t *testing.T) {
	v := newTestValidator()
	err := v.ValidateBytes([]byte(`{}`), "schemas/missing.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	v := newTestValidator()

	data := []byte(`{"item_id": "1", "weight": 1}`)
	require.NoError(t, v.ValidateBytes(data, dropSchemaPath))
	require.NoError(t, v.ValidateBytes(data, dropSchemaPath))
	assert.Len(t, v.schemas, 1)
}

func TestIssue_String(t *testing.T) {
	assert.Equal(t, "  - at (root): validation failed", Issue{Path: "(root)"}.String())
	assert.Equal(t, "  - at /weight: minimum validation failed (too small)",
		Issue{Path: "/weight", Keyword: "minimum", Detail: "too small"}.String())
}
