package memory

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"
)

var _ Object = (*node)(nil)

type node struct {
	mu   sync.RWMutex // used on the root only
	data map[string]any
	root *node
}

// New creates an empty root object.
func New() Object {
	return newRoot()
}

func newRoot() *node {
	n := &node{data: make(map[string]any)}
	n.root = n
	return n
}

func (n *node) child() *node {
	return &node{data: make(map[string]any), root: n.root}
}

func (n *node) get(key string) (any, bool) {
	n.root.mu.RLock()
	defer n.root.mu.RUnlock()
	v, ok := n.data[key]
	return v, ok
}

func (n *node) set(key string, value any) {
	n.root.mu.Lock()
	n.data[key] = value
	n.root.mu.Unlock()
}

func (n *node) Keys() []string {
	n.root.mu.RLock()
	keys := make([]string, 0, len(n.data))
	for k := range n.data {
		keys = append(keys, k)
	}
	n.root.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

func (n *node) Len() int {
	n.root.mu.RLock()
	defer n.root.mu.RUnlock()
	return len(n.data)
}

func (n *node) Has(key string) bool {
	_, ok := n.get(key)
	return ok
}

func (n *node) TryGetString(key string) (string, bool) {
	v, ok := n.get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (n *node) TryGetInt(key string) (int, bool) {
	v, ok := n.get(key)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		if x == math.Trunc(x) {
			return int(x), true
		}
	}
	return 0, false
}

func (n *node) TryGetBool(key string) (bool, bool) {
	v, ok := n.get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func (n *node) TryGetFloat(key string) (float64, bool) {
	v, ok := n.get(key)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	}
	return 0, false
}

func (n *node) TryGetObject(key string) (Object, bool) {
	v, ok := n.get(key)
	if !ok {
		return nil, false
	}
	o, ok := v.(*node)
	if !ok {
		return nil, false
	}
	return o, true
}

func (n *node) GetString(key string) string {
	s, _ := n.TryGetString(key)
	return s
}

func (n *node) GetInt(key string) int {
	i, _ := n.TryGetInt(key)
	return i
}

func (n *node) GetBool(key string) bool {
	b, _ := n.TryGetBool(key)
	return b
}

func (n *node) GetOrCreateObject(key string) Object {
	n.root.mu.Lock()
	defer n.root.mu.Unlock()
	if o, ok := n.data[key].(*node); ok {
		return o
	}
	o := n.child()
	n.data[key] = o
	return o
}

func (n *node) SetString(key, value string)        { n.set(key, value) }
func (n *node) SetInt(key string, value int)       { n.set(key, value) }
func (n *node) SetBool(key string, value bool)     { n.set(key, value) }
func (n *node) SetFloat(key string, value float64) { n.set(key, value) }

func (n *node) Delete(key string) {
	n.root.mu.Lock()
	delete(n.data, key)
	n.root.mu.Unlock()
}

func (n *node) Clear() {
	n.root.mu.Lock()
	n.data = make(map[string]any)
	n.root.mu.Unlock()
}

func (n *node) MarshalJSON() ([]byte, error) {
	n.root.mu.RLock()
	plain := toPlain(n)
	n.root.mu.RUnlock()
	return json.Marshal(plain)
}

// UnmarshalJSON replaces the contents of n. Integral numbers load as ints.
func (n *node) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	n.root.mu.Lock()
	defer n.root.mu.Unlock()
	fresh, err := fromPlain(n, raw)
	if err != nil {
		return err
	}
	n.data = fresh
	return nil
}

// toPlain expects the root lock to be held.
func toPlain(n *node) map[string]any {
	out := make(map[string]any, len(n.data))
	for k, v := range n.data {
		if c, ok := v.(*node); ok {
			out[k] = toPlain(c)
			continue
		}
		out[k] = v
	}
	return out
}

func fromPlain(parent *node, raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		switch x := v.(type) {
		case string, bool:
			out[k] = x
		case float64:
			if x == math.Trunc(x) && math.Abs(x) <= math.MaxInt32 {
				out[k] = int(x)
			} else {
				out[k] = x
			}
		case map[string]any:
			c := parent.child()
			data, err := fromPlain(c, x)
			if err != nil {
				return nil, err
			}
			c.data = data
			out[k] = c
		case nil:
			// absent
		default:
			return nil, fmt.Errorf("%w: key %q holds unsupported %T", ErrMalformed, k, v)
		}
	}
	return out, nil
}

// Clone returns a deep, detached copy of o.
func Clone(o Object) (Object, error) {
	raw, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}
	c := newRoot()
	if err := c.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return c, nil
}

// FromJSON builds a root object from a JSON document.
func FromJSON(data []byte) (Object, error) {
	n := newRoot()
	if err := n.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return n, nil
}
