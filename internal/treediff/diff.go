// Package treediff reports how a household's tree changed between two
// precompute runs as an RFC 6902 JSON Patch.
package treediff

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"kinship-engine/internal/model"
)

type Op struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Roots diffs two rendered forests. Volatile response metadata is not
// part of the comparison, only the trees themselves.
func Roots(before, after []*model.ViewNode) ([]Op, error) {
	a, err := generic(before)
	if err != nil {
		return nil, fmt.Errorf("decode baseline roots: %w", err)
	}
	b, err := generic(after)
	if err != nil {
		return nil, fmt.Errorf("decode current roots: %w", err)
	}
	return Diff(a, b, ""), nil
}

func generic(roots []*model.ViewNode) (any, error) {
	if roots == nil {
		roots = []*model.ViewNode{}
	}
	raw, err := json.Marshal(roots)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Diff returns the operations turning a into b. Both must be decoded JSON
// (maps, slices, scalars). Two nodes with different ids are different
// members, so the whole node is replaced rather than patched field by field.
// Keys are visited in sorted order so equal inputs give equal patches.
func Diff(a, b any, path string) []Op {
	var p patch
	p.value(path, a, b)
	return p.ops
}

type patch struct {
	ops []Op
}

func (p *patch) value(path string, a, b any) {
	switch av := a.(type) {
	case map[string]any:
		if bv, ok := b.(map[string]any); ok && sameMember(av, bv) {
			p.object(path, av, bv)
			return
		}
	case []any:
		if bv, ok := b.([]any); ok {
			p.array(path, av, bv)
			return
		}
	case string, float64, bool:
		if a == b {
			return
		}
	case nil:
		if b == nil {
			return
		}
	}
	p.ops = append(p.ops, Op{Op: "replace", Path: path, Value: marshalValue(b)})
}

func (p *patch) object(path string, a, b map[string]any) {
	for _, k := range unionKeys(a, b) {
		child := path + "/" + pointerEscaper.Replace(k)
		av, inA := a[k]
		bv, inB := b[k]
		switch {
		case !inB:
			p.ops = append(p.ops, Op{Op: "remove", Path: child})
		case !inA:
			p.ops = append(p.ops, Op{Op: "add", Path: child, Value: marshalValue(bv)})
		default:
			p.value(child, av, bv)
		}
	}
}

// array pairs elements by position. Surplus baseline elements are removed
// last to first so each path is still valid when applied.
func (p *patch) array(path string, a, b []any) {
	n := min(len(a), len(b))
	for i := range n {
		p.value(path+"/"+strconv.Itoa(i), a[i], b[i])
	}
	for i := len(a) - 1; i >= n; i-- {
		p.ops = append(p.ops, Op{Op: "remove", Path: path + "/" + strconv.Itoa(i)})
	}
	for i := n; i < len(b); i++ {
		p.ops = append(p.ops, Op{Op: "add", Path: path + "/" + strconv.Itoa(i), Value: marshalValue(b[i])})
	}
}

// sameMember is false only when both objects carry an id and the ids differ.
func sameMember(a, b map[string]any) bool {
	ai, aok := a["id"]
	bi, bok := b["id"]
	return !aok || !bok || ai == bi
}

func marshalValue(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func unionKeys(a, b map[string]any) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, dup := a[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// RFC 6901 token escaping.
var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")
