package symbolic

import "github.com/google/btree"

// term is one keyed component of a container.
type term struct {
	key string
	e   *Expr
}

func termLess(a, b term) bool {
	return a.key < b.key
}

// termMap is an ordered map from canonical key to component. Copies are
// copy-on-write, so copying a container before adding to it is cheap.
type termMap struct {
	t *btree.BTreeG[term]
}

func newTermMap() *termMap {
	return &termMap{t: btree.NewG(8, termLess)}
}

// clone returns an independent copy of m. A nil map clones to an empty one.
func (m *termMap) clone() *termMap {
	if m == nil {
		return newTermMap()
	}
	return &termMap{t: m.t.Clone()}
}

func (m *termMap) len() int {
	if m == nil {
		return 0
	}
	return m.t.Len()
}

func (m *termMap) get(key string) (*Expr, bool) {
	if m == nil {
		return nil, false
	}
	it, ok := m.t.Get(term{key: key})
	return it.e, ok
}

func (m *termMap) set(key string, e *Expr) {
	m.t.ReplaceOrInsert(term{key: key, e: e})
}

func (m *termMap) del(key string) {
	m.t.Delete(term{key: key})
}

// each calls f for every component in key order until f returns false.
func (m *termMap) each(f func(key string, e *Expr) bool) {
	if m == nil {
		return
	}
	m.t.Ascend(func(it term) bool {
		return f(it.key, it.e)
	})
}

// values returns the components in key order.
func (m *termMap) values() []*Expr {
	r := make([]*Expr, 0, m.len())
	m.each(func(_ string, e *Expr) bool {
		r = append(r, e)
		return true
	})
	return r
}

// first returns the component with the least key.
func (m *termMap) first() *Expr {
	var r *Expr
	m.each(func(_ string, e *Expr) bool {
		r = e
		return false
	})
	return r
}
