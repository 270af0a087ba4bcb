// Package document provides loading, saving, and key-order-aware access for
// the JSON configuration documents maintained by the promptkit tools.
//
// A Document is a top-level JSON object read whole from disk and written
// whole to disk. Top-level key order is preserved across a load/save cycle
// because the framework files are hand-authored and reviewed as diffs.
// Nested values are decoded as plain Go values (map[string]any, []any).
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/anon987654321/promptkit/pkg/errors"
)

// filePermissions is the mode used for written documents.
const filePermissions = 0o644

// indent is the indentation unit for saved documents.
const indent = "  "

// Object is a JSON object that preserves key insertion order.
// It is used for the top level of a Document and for constructed
// group containers, where ordering is part of the file's readability.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores a value under key, appending the key to the order if new.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// MarshalJSON implements json.Marshaler, emitting keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valueJSON, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, recording top-level key order.
func (o *Object) UnmarshalJSON(data []byte) error {
	o.keys = nil
	o.values = make(map[string]any)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		o.Set(key, value)
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Document is a whole JSON configuration document.
type Document struct {
	*Object

	// raw holds the source bytes as read from disk. Empty for documents
	// constructed in memory. Used by text-level heuristic scans.
	raw []byte

	// path is the file the document was loaded from, for error reporting.
	path string
}

// New creates an empty in-memory document.
func New() *Document {
	return &Document{Object: NewObject()}
}

// Parse decodes a document from raw JSON bytes. The name is used in
// parse error messages only.
func Parse(data []byte, name string) (*Document, error) {
	obj := NewObject()
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, errors.WrapParse("json", name, err)
	}
	return &Document{Object: obj, raw: data, path: name}, nil
}

// Load reads and parses a document from path. The whole file is read at
// once; there is no streaming parse.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Save writes the document to path as pretty-printed JSON with 2-space
// indentation and a trailing newline, replacing any existing file.
// The source file the document was loaded from is never modified unless
// path points back at it.
func (d *Document) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Marshal serializes the document as indented JSON with a trailing newline.
func (d *Document) Marshal() ([]byte, error) {
	compact, err := json.Marshal(d.Object)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", indent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Text returns the document's serialized form for text-level scans:
// the raw source bytes when the document was loaded from disk, or a
// fresh serialization for in-memory documents.
func (d *Document) Text() string {
	if len(d.raw) > 0 {
		return string(d.raw)
	}
	data, err := d.Marshal()
	if err != nil {
		return ""
	}
	return string(data)
}

// Path returns the file path the document was loaded from, if any.
func (d *Document) Path() string {
	return d.path
}

// Section returns the value for key as a map, or nil if absent or not an
// object. Used by checks that only care about object-shaped sections.
func (d *Document) Section(key string) map[string]any {
	v, ok := d.Get(key)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m
}

// SortedKeys returns the keys of m sorted lexically, for deterministic
// report output.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
