package recon

import (
	"github.com/lambdac/lambdac/internal/errors"
	"github.com/lambdac/lambdac/internal/term"
)

// Subst is a solved unification substitution: unification-variable
// name to the type it stands for.
type Subst map[string]term.Type

// ApplySubst walks ty, replacing every IdTy whose name is in sub with
// its target, recursively, so a chain of substitutions (x -> y, y ->
// Bool) resolves in one pass as long as sub is already composed.
func ApplySubst(ty term.Type, sub Subst) term.Type {
	return term.SubstituteIdTy(ty, map[string]term.Type(sub))
}

func applySubstToConstraints(cs []Constraint, sub Subst) []Constraint {
	out := make([]Constraint, len(cs))
	for i, c := range cs {
		out[i] = Constraint{ApplySubst(c.Left, sub), ApplySubst(c.Right, sub)}
	}
	return out
}

// occurs reports whether name appears free anywhere inside ty,
// walking ArrowTy, TupleTy and RecordTy fields compositionally and
// treating every other type (Bool, Nat, ...) as a base case.
func occurs(name string, ty term.Type) bool {
	switch t := ty.(type) {
	case *term.IdTy:
		return t.Name == name
	case *term.ArrowTy:
		return occurs(name, t.T1) || occurs(name, t.T2)
	case *term.TupleTy:
		for _, e := range t.Elements {
			if occurs(name, e) {
				return true
			}
		}
		return false
	case *term.RecordTy:
		for _, f := range t.Fields {
			if occurs(name, f.Ty) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Unify discharges a worklist of equality constraints, producing a
// substitution that grounds every unification variable it can solve.
// It fails with UnifyFail on a head mismatch and OccursCheckFail on a
// circular binding (x = ...x...).
func Unify(constraints []Constraint) (Subst, error) {
	work := make([]Constraint, len(constraints))
	copy(work, constraints)
	result := Subst{}

	for len(work) > 0 {
		c := work[0]
		work = work[1:]

		l, r := c.Left, c.Right
		if l.Equal(r) {
			continue
		}

		if lv, ok := l.(*term.IdTy); ok {
			if occurs(lv.Name, r) {
				return nil, errors.OccursCheckFail("", lv.Name, r.String())
			}
			work = substituteInWorklist(work, lv.Name, r)
			result = composeOne(result, lv.Name, r)
			continue
		}
		if rv, ok := r.(*term.IdTy); ok {
			if occurs(rv.Name, l) {
				return nil, errors.OccursCheckFail("", rv.Name, l.String())
			}
			work = substituteInWorklist(work, rv.Name, l)
			result = composeOne(result, rv.Name, l)
			continue
		}

		la, lok := l.(*term.ArrowTy)
		ra, rok := r.(*term.ArrowTy)
		if lok && rok {
			work = append([]Constraint{{la.T1, ra.T1}, {la.T2, ra.T2}}, work...)
			continue
		}

		lt, ltok := l.(*term.TupleTy)
		rt, rtok := r.(*term.TupleTy)
		if ltok && rtok {
			if len(lt.Elements) != len(rt.Elements) {
				return nil, errors.UnifyFail("", l.String(), r.String())
			}
			var fresh []Constraint
			for i := range lt.Elements {
				fresh = append(fresh, Constraint{lt.Elements[i], rt.Elements[i]})
			}
			work = append(fresh, work...)
			continue
		}

		return nil, errors.UnifyFail("", l.String(), r.String())
	}

	return result, nil
}

func substituteInWorklist(work []Constraint, name string, target term.Type) []Constraint {
	sub := Subst{name: target}
	return applySubstToConstraints(work, sub)
}

// composeOne extends result with name -> target, also applying the new
// binding to every type already in result so the map stays fully
// composed (never needs re-application to reach a fixpoint).
func composeOne(result Subst, name string, target term.Type) Subst {
	next := Subst{}
	for k, v := range result {
		next[k] = ApplySubst(v, Subst{name: target})
	}
	next[name] = target
	return next
}
