package phase

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/stint/malloc"
	"github.com/wesleyorama2/stint/meter"
)

// documentSchema pins the externally consumed document shape: name is
// mandatory, everything else optional, children recursively
// same-shaped, no extra keys.
const documentSchema = `{
	"type": "object",
	"required": ["name"],
	"additionalProperties": false,
	"properties": {
		"name": { "type": "string" },
		"metrics": {
			"type": "object",
			"properties": {
				"time": { "type": "number" },
				"memory": {
					"type": "object",
					"required": ["peak", "closing", "alloc_num", "alloc_bytes", "free_num", "free_bytes"],
					"additionalProperties": false,
					"properties": {
						"peak": { "type": "integer", "minimum": 0 },
						"closing": { "type": "integer" },
						"alloc_num": { "type": "integer", "minimum": 0 },
						"alloc_bytes": { "type": "integer", "minimum": 0 },
						"free_num": { "type": "integer", "minimum": 0 },
						"free_bytes": { "type": "integer", "minimum": 0 }
					}
				}
			}
		},
		"data": { "type": "object" },
		"children": {
			"type": "array",
			"items": { "$ref": "#" }
		}
	}
}`

func compileDocumentSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	compiler := jsonschema.NewCompiler()
	require.NoError(t, compiler.AddResource("document.json", strings.NewReader(documentSchema)))
	schema, err := compiler.Compile("document.json")
	require.NoError(t, err)
	return schema
}

func validateDocument(t *testing.T, schema *jsonschema.Schema, doc Document) error {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var v any
	require.NoError(t, json.Unmarshal(raw, &v))
	return schema.Validate(v)
}

func TestDocumentMatchesSchema(t *testing.T) {
	schema := compileDocumentSchema(t)

	registry := malloc.NewRegistry()
	heap := malloc.NewHeap(nil, registry)

	root := New("root", meter.NewAllocCounterIn(registry), meter.NewStopwatch())
	root.Start()
	ptr := heap.Alloc(4096)
	heap.Free(ptr)
	root.Stop()
	root.Data().Put("label", "example")

	child := NewTimed("child")
	child.Start()
	child.Stop()
	root.AppendChild(child)

	assert.NoError(t, validateDocument(t, schema, root.GatherData()))
}

func TestDocumentSchemaRejectsUnnamed(t *testing.T) {
	schema := compileDocumentSchema(t)

	var v any
	require.NoError(t, json.Unmarshal([]byte(`{"metrics":{}}`), &v))
	assert.Error(t, schema.Validate(v))
}

func TestDocumentJSONShape(t *testing.T) {
	doc := Document{
		Name: "test",
		Data: map[string]any{"sum": -497952},
	}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"test","data":{"sum":-497952}}`, string(raw))

	// Empty optional sections are omitted entirely.
	raw, err = json.Marshal(Document{Name: "empty"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"empty"}`, string(raw))
}
