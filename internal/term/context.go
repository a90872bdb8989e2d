package term

import "fmt"

// entry is one (name, binding) slot of a Context, ordered outermost to
// innermost. Index 0 is always the topmost (innermost) entry.
type entry struct {
	name    string
	binding Binding
}

// Context is the ordered stack of bindings that the AST builder
// resolves names against and the checker/reconstructor types against.
// Lookup scans from the top so the innermost binding of a shadowed
// name always wins.
type Context struct {
	entries []entry
}

// NewContext returns an empty context.
func NewContext() *Context { return &Context{} }

// Len reports the context depth.
func (c *Context) Len() int { return len(c.entries) }

// AddBinding pushes a new innermost binding.
func (c *Context) AddBinding(name string, b Binding) {
	c.entries = append(c.entries, entry{name: name, binding: b})
}

// PopBinding removes the innermost binding. It panics if the context is
// empty, since every caller is expected to pair this with a prior
// AddBinding (the scoped-add discipline guarantees the pairing).
func (c *Context) PopBinding() {
	if len(c.entries) == 0 {
		panic("term: PopBinding on empty context")
	}
	c.entries = c.entries[:len(c.entries)-1]
}

// FindBinding scans from the top for name and returns its de Bruijn
// index and binding. ok is false if name is unbound.
func (c *Context) FindBinding(name string) (idx int, b Binding, ok bool) {
	for i := len(c.entries) - 1; i >= 0; i-- {
		if c.entries[i].name == name {
			return len(c.entries) - 1 - i, c.entries[i].binding, true
		}
	}
	return 0, nil, false
}

// GetBinding returns the binding at de Bruijn index idx.
func (c *Context) GetBinding(idx int) (Binding, error) {
	if idx < 0 || idx >= len(c.entries) {
		return nil, fmt.Errorf("term: index %d out of range for context of length %d", idx, len(c.entries))
	}
	return c.entries[len(c.entries)-1-idx].binding, nil
}

// GetName returns the name bound at de Bruijn index idx.
func (c *Context) GetName(idx int) (string, error) {
	if idx < 0 || idx >= len(c.entries) {
		return "", fmt.Errorf("term: index %d out of range for context of length %d", idx, len(c.entries))
	}
	return c.entries[len(c.entries)-1-idx].name, nil
}

// GetType returns the type of the variable at idx. For a VarBinding
// this is its type directly; for a SchemeBinding this instantiates a
// fresh copy (minting a fresh IdTy for every quantified variable),
// implementing let-polymorphism's "generalize, then re-instantiate on
// every use" discipline. Any other binding kind is an error.
func (c *Context) GetType(idx int) (Type, error) {
	b, err := c.GetBinding(idx)
	if err != nil {
		return nil, err
	}
	switch bb := b.(type) {
	case VarBinding:
		return bb.Ty, nil
	case SchemeBinding:
		subs := make(map[string]Type, len(bb.QuantifiedVars))
		for _, v := range bb.QuantifiedVars {
			subs[v] = NewFreshIdTy()
		}
		return substituteIdTy(bb.BodyTy, subs), nil
	default:
		name, _ := c.GetName(idx)
		return nil, fmt.Errorf("term: wrong kind of binding for variable %q at index %d", name, idx)
	}
}

// Clone returns an independent copy so a speculative branch (e.g. a
// subtype check that must extend context) can diverge without
// mutating the caller's view.
func (c *Context) Clone() *Context {
	cp := make([]entry, len(c.entries))
	copy(cp, c.entries)
	return &Context{entries: cp}
}

// Top returns the innermost (most recently added) entry's name and
// binding. It panics on an empty context.
func (c *Context) Top() (string, Binding) {
	e := c.entries[len(c.entries)-1]
	return e.name, e.binding
}

// WithBinding pushes (name, b), runs fn, and pops the binding on every
// exit path, including a panic propagating out of fn, so a binder's
// scope never leaks past its own body.
func WithBinding[T any](c *Context, name string, b Binding, fn func() (T, error)) (T, error) {
	c.AddBinding(name, b)
	defer c.PopBinding()
	return fn()
}

// substituteIdTy replaces named IdTy occurrences per subs, recursing
// through every type constructor. This is distinct from the
// de-Bruijn-indexed shift/subst engine in package subst: scheme
// instantiation substitutes by *name*, not by index, since IdTy
// variables are not part of the binder-indexed scope.
func substituteIdTy(ty Type, subs map[string]Type) Type {
	switch t := ty.(type) {
	case *IdTy:
		if r, ok := subs[t.Name]; ok {
			return r
		}
		return t
	case *ArrowTy:
		return &ArrowTy{T1: substituteIdTy(t.T1, subs), T2: substituteIdTy(t.T2, subs)}
	case *RecordTy:
		fields := make([]TyField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = TyField{Label: f.Label, Ty: substituteIdTy(f.Ty, subs)}
		}
		return &RecordTy{Fields: fields}
	case *TupleTy:
		elems := make([]Type, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = substituteIdTy(e, subs)
		}
		return &TupleTy{Elements: elems}
	default:
		return ty
	}
}

// SubstituteIdTy is the exported form of substituteIdTy, used by the
// reconstructor/unifier (package recon) to apply a solved substitution
// to a type.
func SubstituteIdTy(ty Type, subs map[string]Type) Type { return substituteIdTy(ty, subs) }
