package term

import (
	"fmt"
	"strings"
)

// Type is the base interface for nameless type nodes.
type Type interface {
	fmt.Stringer
	typeNode()
	// Equal reports structural equality: de Bruijn indices make
	// alpha-equivalent types structurally identical, so binder names and
	// CtxLen tags are ignored, and record fields are matched by label
	// regardless of order.
	Equal(Type) bool
}

// BoolTy, NatTy, TopTy, BotTy are the base types.
type BoolTy struct{}

func (BoolTy) typeNode()      {}
func (BoolTy) String() string { return "Bool" }
func (BoolTy) Equal(o Type) bool {
	_, ok := o.(BoolTy)
	return ok
}

type NatTy struct{}

func (NatTy) typeNode()      {}
func (NatTy) String() string { return "Nat" }
func (NatTy) Equal(o Type) bool {
	_, ok := o.(NatTy)
	return ok
}

type TopTy struct{}

func (TopTy) typeNode()      {}
func (TopTy) String() string { return "Top" }
func (TopTy) Equal(o Type) bool {
	_, ok := o.(TopTy)
	return ok
}

type BotTy struct{}

func (BotTy) typeNode()      {}
func (BotTy) String() string { return "Bot" }
func (BotTy) Equal(o Type) bool {
	_, ok := o.(BotTy)
	return ok
}

// ArrowTy is a function type.
type ArrowTy struct {
	T1, T2 Type
}

func (*ArrowTy) typeNode() {}
func (a *ArrowTy) String() string {
	return fmt.Sprintf("%s->%s", parenIfArrow(a.T1), a.T2)
}
func (a *ArrowTy) Equal(o Type) bool {
	ot, ok := o.(*ArrowTy)
	return ok && a.T1.Equal(ot.T1) && a.T2.Equal(ot.T2)
}

func parenIfArrow(t Type) string {
	if _, ok := t.(*ArrowTy); ok {
		return "(" + t.String() + ")"
	}
	return t.String()
}

// TyField is one label/type entry of a RecordTy.
type TyField struct {
	Label string
	Ty    Type
}

// RecordTy is an ordered-mapping record type; field order only affects
// printing, not Equal/subtype/join/meet.
type RecordTy struct {
	Fields []TyField
}

func (*RecordTy) typeNode() {}
func (r *RecordTy) String() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = fmt.Sprintf("%s:%s", f.Label, f.Ty)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Lookup returns the type of label, and whether it is present.
func (r *RecordTy) Lookup(label string) (Type, bool) {
	for _, f := range r.Fields {
		if f.Label == label {
			return f.Ty, true
		}
	}
	return nil, false
}

func (r *RecordTy) Equal(o Type) bool {
	ot, ok := o.(*RecordTy)
	if !ok || len(r.Fields) != len(ot.Fields) {
		return false
	}
	for _, f := range r.Fields {
		oty, ok := ot.Lookup(f.Label)
		if !ok || !f.Ty.Equal(oty) {
			return false
		}
	}
	return true
}

// TupleTy is an ordered product type.
type TupleTy struct {
	Elements []Type
}

func (*TupleTy) typeNode() {}
func (t *TupleTy) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *TupleTy) Equal(o Type) bool {
	ot, ok := o.(*TupleTy)
	if !ok || len(t.Elements) != len(ot.Elements) {
		return false
	}
	for i := range t.Elements {
		if !t.Elements[i].Equal(ot.Elements[i]) {
			return false
		}
	}
	return true
}

// TyVar is a de Bruijn-indexed type variable; it shares numbering with
// term variables because both live in the same Context.
type TyVar struct {
	Index  int
	CtxLen int
}

func (*TyVar) typeNode()      {}
func (v *TyVar) String() string { return fmt.Sprintf("TyVar(%d/%d)", v.Index, v.CtxLen) }
func (v *TyVar) Equal(o Type) bool {
	ot, ok := o.(*TyVar)
	return ok && v.Index == ot.Index
}

// IdTy is a level-5-only free type name: either a source-annotated
// identifier or a unification variable minted by NewFreshIdTy.
type IdTy struct {
	Name string
}

func (*IdTy) typeNode()      {}
func (t *IdTy) String() string { return t.Name }
func (t *IdTy) Equal(o Type) bool {
	ot, ok := o.(*IdTy)
	return ok && t.Name == ot.Name
}

// freshCounter is the process-local monotonic counter backing fresh
// unification-variable names: never reused, globally unique within a
// process. Reset it between independent interpreter runs to keep
// principal types stable across test invocations.
var freshCounter int

// FreshIdTyPrefix is the reserved prefix for minted unification
// variables, distinguishing them from source-written free type names.
const FreshIdTyPrefix = "?X"

// NewFreshIdTy mints a globally-unique unification variable.
func NewFreshIdTy() *IdTy {
	name := fmt.Sprintf("%s%d", FreshIdTyPrefix, freshCounter)
	freshCounter++
	return &IdTy{Name: name}
}

// ResetFreshCounter resets the fresh-variable counter. Call once per
// independent top-level run so principal types print identically
// across repeated invocations.
func ResetFreshCounter() { freshCounter = 0 }

// UnivTy is "All X. T".
type UnivTy struct {
	Name string
	Body Type
}

func (*UnivTy) typeNode()      {}
func (t *UnivTy) String() string { return fmt.Sprintf("All %s.%s", t.Name, t.Body) }
func (t *UnivTy) Equal(o Type) bool {
	ot, ok := o.(*UnivTy)
	return ok && t.Body.Equal(ot.Body)
}

// ExisTy is "Some X. T".
type ExisTy struct {
	Name string
	Body Type
}

func (*ExisTy) typeNode()      {}
func (t *ExisTy) String() string { return fmt.Sprintf("Some %s.%s", t.Name, t.Body) }
func (t *ExisTy) Equal(o Type) bool {
	ot, ok := o.(*ExisTy)
	return ok && t.Body.Equal(ot.Body)
}
