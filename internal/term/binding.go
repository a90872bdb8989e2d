package term

// Binding is the base interface for what a Context slot carries.
type Binding interface {
	bindingNode()
}

// VarBinding is a term variable bound to a concrete type.
type VarBinding struct {
	Ty Type
}

func (VarBinding) bindingNode() {}

// TyVarBinding is a type variable; it occupies one Context slot
// alongside term bindings, since type and term variables share the
// same de Bruijn numbering.
type TyVarBinding struct{}

func (TyVarBinding) bindingNode() {}

// OpaqueBinding is a variable with no known type yet: used for
// untyped-calculus binders (which carry no type at all) and, during
// level-5 reconstruction, as a placeholder before a type is assigned.
type OpaqueBinding struct{}

func (OpaqueBinding) bindingNode() {}

// SchemeBinding is a let-generalized polymorphic type scheme (level 5).
// QuantifiedVars names the IdTy variables universally quantified over
// BodyTy; GetType instantiates a fresh copy on every lookup.
type SchemeBinding struct {
	QuantifiedVars []string
	BodyTy         Type
}

func (SchemeBinding) bindingNode() {}
