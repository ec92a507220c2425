package streamfinder

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// baseConfig is a validated base document and its existing priority items.
type baseConfig struct {
	doc      []byte
	priority []json.RawMessage
}

// parseBaseConfig checks that text is a JSON object with a priority array.
// When the object repeats the priority key the last one wins, as it does for
// any JSON reader. A null item is rejected; other non-object items are kept
// as they are. The returned document owns a copy of text.
func parseBaseConfig(text string) (*baseConfig, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseConfig, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: base config must be a JSON object", ErrInvalidBaseConfig)
	}
	raw, ok := top["priority"]
	if !ok {
		return nil, fmt.Errorf("%w: missing priority array", ErrInvalidBaseConfig)
	}
	arr := gjson.ParseBytes(raw)
	if !arr.IsArray() {
		return nil, fmt.Errorf("%w: priority must be an array", ErrInvalidBaseConfig)
	}

	var items []json.RawMessage
	var itemErr error
	arr.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.Null {
			itemErr = fmt.Errorf("%w: priority item %d is null", ErrInvalidBaseConfig, len(items)+1)
			return false
		}
		items = append(items, json.RawMessage(v.Raw))
		return true
	})
	if itemErr != nil {
		return nil, itemErr
	}

	return &baseConfig{doc: []byte(text), priority: items}, nil
}

// Renumber sets each object item's priority to its 1-based position. Items
// keep their own key order; a missing priority key is appended. Items that
// are not objects have no priority to set and are copied unchanged, but
// still take up their position. A null item is an error. The input slice is
// not modified.
func Renumber(items []json.RawMessage) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(items))
	for i, item := range items {
		if !gjson.ValidBytes(item) {
			return nil, fmt.Errorf("priority item %d is not valid JSON", i+1)
		}
		v := gjson.ParseBytes(item)
		switch {
		case v.Type == gjson.Null:
			return nil, fmt.Errorf("priority item %d is null", i+1)
		case !v.IsObject():
			out[i] = bytes.Clone(item)
			continue
		}
		updated, err := sjson.SetBytes(bytes.Clone(item), "priority", i+1)
		if err != nil {
			return nil, fmt.Errorf("renumber item %d: %w", i+1, err)
		}
		out[i] = updated
	}
	return out, nil
}

// merge prepends added to the base priority list, renumbers, and writes the
// result back into a copy of the base document.
func merge(base *baseConfig, added []json.RawMessage) (*Config, error) {
	combined := make([]json.RawMessage, 0, len(added)+len(base.priority))
	combined = append(combined, added...)
	combined = append(combined, base.priority...)

	renumbered, err := Renumber(combined)
	if err != nil {
		return nil, err
	}

	arr := []byte{'['}
	for i, item := range renumbered {
		if i > 0 {
			arr = append(arr, ',')
		}
		arr = append(arr, item...)
	}
	arr = append(arr, ']')

	doc := replacePriority(base.doc, arr)
	var compact bytes.Buffer
	if err := json.Compact(&compact, doc); err != nil {
		return nil, fmt.Errorf("compact config: %w", err)
	}
	return &Config{doc: compact.Bytes(), added: len(added), total: len(renumbered)}, nil
}

// replacePriority rebuilds the top-level object of doc with arr as its only
// priority member, placed where the first priority key stood. Later
// duplicates of the key are dropped. Every other member is copied raw.
func replacePriority(doc, arr []byte) []byte {
	out := []byte{'{'}
	wrote := false
	first := true
	gjson.ParseBytes(doc).ForEach(func(k, v gjson.Result) bool {
		value := v.Raw
		if k.String() == "priority" {
			if wrote {
				return true
			}
			wrote = true
			value = string(arr)
		}
		if !first {
			out = append(out, ',')
		}
		first = false
		out = append(out, k.Raw...)
		out = append(out, ':')
		out = append(out, value...)
		return true
	})
	return append(out, '}')
}
