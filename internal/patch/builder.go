package patch

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonpatch "gomodules.xyz/jsonpatch/v2"
)

// OpReplace is the only operation the builder emits.
const OpReplace = "replace"

// FieldPath is a JSON pointer split into unescaped field names.
type FieldPath []string

// Path returns a FieldPath from field names.
func Path(fields ...string) FieldPath {
	return FieldPath(fields)
}

// Pointer renders the path as an RFC 6901 JSON pointer.
func (p FieldPath) Pointer() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, field := range p {
		sb.WriteByte('/')
		sb.WriteString(escape(field))
	}
	return sb.String()
}

func escape(field string) string {
	field = strings.ReplaceAll(field, "~", "~0")
	return strings.ReplaceAll(field, "/", "~1")
}

// Builder accumulates replace operations in the order they must be applied.
// It is not safe for concurrent use.
type Builder struct {
	ops []jsonpatch.JsonPatchOperation

	// materialized holds pointers this builder has already replaced
	materialized map[string]bool
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{
		materialized: make(map[string]bool),
	}
}

// Replace appends a replace of path with value, preceded by an empty-object
// replace for each ancestor the builder has not materialized yet.
// An empty path is ignored.
func (b *Builder) Replace(path FieldPath, value interface{}) *Builder {
	if len(path) == 0 {
		return b
	}

	for i := 1; i < len(path); i++ {
		parent := path[:i].Pointer()
		if b.materialized[parent] {
			continue
		}
		b.ops = append(b.ops, jsonpatch.NewOperation(OpReplace, parent, map[string]interface{}{}))
		b.materialized[parent] = true
	}

	pointer := path.Pointer()
	b.ops = append(b.ops, jsonpatch.NewOperation(OpReplace, pointer, value))
	b.materialized[pointer] = true
	return b
}

// Len returns the number of operations built so far.
func (b *Builder) Len() int {
	return len(b.ops)
}

// Operations returns a copy of the operations in application order.
func (b *Builder) Operations() []jsonpatch.JsonPatchOperation {
	out := make([]jsonpatch.JsonPatchOperation, len(b.ops))
	copy(out, b.ops)
	return out
}

// JSON renders the operations as an application/json-patch+json document.
func (b *Builder) JSON() ([]byte, error) {
	if len(b.ops) == 0 {
		return nil, fmt.Errorf("empty patch")
	}
	data, err := json.Marshal(b.ops)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patch: %w", err)
	}
	return data, nil
}

// StatusPhase builds the patch that moves a resource's status to phase.
func StatusPhase(phase string) *Builder {
	return New().Replace(Path("status", "phase"), phase)
}
