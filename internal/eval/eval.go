// Package eval implements the single small-step call-by-value reducer
// shared by all six calculi. Lower levels never construct the node
// kinds higher levels add (records, type abstraction, existentials),
// so one reduction relation covers every level: a level's program
// simply never exercises the rules it has no syntax for.
package eval

import (
	"github.com/lambdac/lambdac/internal/errors"
	"github.com/lambdac/lambdac/internal/subst"
	"github.com/lambdac/lambdac/internal/term"
)

// noRuleApplies is an internal sentinel: step returns it when no
// reduction rule matches, and Eval's driver loop treats that as "done"
// rather than a real failure. It must never escape this package.
type noRuleApplies struct{}

func (noRuleApplies) Error() string { return "no rule applies" }

// IsValue reports whether t is a normal form under the shared CBV
// semantics: lambdas, type abstractions, booleans, numerals, tuples
// and records of values, and existential packages are values;
// everything else still has work to do.
func IsValue(t term.Term) bool {
	switch n := t.(type) {
	case *term.Abs, term.True, term.False, *term.TypeAbs:
		return true
	case *term.Tuple:
		for _, f := range n.Fields {
			if !IsValue(f) {
				return false
			}
		}
		return true
	case *term.Record:
		for _, f := range n.Fields {
			if !IsValue(f.Value) {
				return false
			}
		}
		return true
	case *term.ExisPack:
		return IsValue(n.Body)
	default:
		return isNumericValue(t)
	}
}

func isNumericValue(t term.Term) bool {
	switch n := t.(type) {
	case term.Zero:
		return true
	case *term.Succ:
		return isNumericValue(n.Arg)
	default:
		return false
	}
}

// step performs exactly one reduction, matching the call-by-value,
// left-to-right rules: reduce the operator to a value before the
// operand, and never reduce under a binder.
func step(t term.Term) (term.Term, error) {
	switch n := t.(type) {
	case *term.App:
		if abs, ok := n.Fn.(*term.Abs); ok && IsValue(n.Arg) {
			return subst.SubstTop(n.Arg, abs.Body)
		}
		if IsValue(n.Fn) {
			arg, err := step(n.Arg)
			if err != nil {
				return nil, err
			}
			return &term.App{Fn: n.Fn, Arg: arg}, nil
		}
		fn, err := step(n.Fn)
		if err != nil {
			return nil, err
		}
		return &term.App{Fn: fn, Arg: n.Arg}, nil

	case *term.If:
		switch n.Cond.(type) {
		case term.True:
			return n.Then, nil
		case term.False:
			return n.Else, nil
		}
		cond, err := step(n.Cond)
		if err != nil {
			return nil, err
		}
		return &term.If{Cond: cond, Then: n.Then, Else: n.Else}, nil

	case *term.Let:
		if IsValue(n.Init) {
			return subst.SubstTop(n.Init, n.Body)
		}
		init, err := step(n.Init)
		if err != nil {
			return nil, err
		}
		return &term.Let{Name: n.Name, Init: init, Body: n.Body}, nil

	case *term.Tuple:
		fields := make([]term.Term, len(n.Fields))
		copy(fields, n.Fields)
		for i, f := range fields {
			if !IsValue(f) {
				stepped, err := step(f)
				if err != nil {
					return nil, err
				}
				fields[i] = stepped
				return &term.Tuple{Fields: fields}, nil
			}
		}
		return nil, noRuleApplies{}

	case *term.Record:
		fields := make([]term.Field, len(n.Fields))
		copy(fields, n.Fields)
		for i, f := range fields {
			if !IsValue(f.Value) {
				stepped, err := step(f.Value)
				if err != nil {
					return nil, err
				}
				fields[i] = term.Field{Label: f.Label, Value: stepped}
				return &term.Record{Fields: fields}, nil
			}
		}
		return nil, noRuleApplies{}

	case *term.Proj:
		if rec, ok := n.Rec.(*term.Record); ok && IsValue(rec) {
			v, ok := rec.Lookup(n.Label)
			if !ok {
				return nil, errors.MissingLabel("eval", "", n.Label, rec.String())
			}
			return v, nil
		}
		if tup, ok := n.Rec.(*term.Tuple); ok && IsValue(tup) {
			idx, convErr := indexFromLabel(n.Label)
			if convErr != nil || idx < 0 || idx >= len(tup.Fields) {
				return nil, errors.MissingLabel("eval", "", n.Label, tup.String())
			}
			return tup.Fields[idx], nil
		}
		rec, err := step(n.Rec)
		if err != nil {
			return nil, err
		}
		return &term.Proj{Rec: rec, Label: n.Label}, nil

	case *term.Succ:
		arg, err := step(n.Arg)
		if err != nil {
			return nil, err
		}
		return &term.Succ{Arg: arg}, nil

	case *term.Pred:
		switch inner := n.Arg.(type) {
		case term.Zero:
			return term.Zero{}, nil
		case *term.Succ:
			if isNumericValue(inner.Arg) {
				return inner.Arg, nil
			}
		}
		arg, err := step(n.Arg)
		if err != nil {
			return nil, err
		}
		return &term.Pred{Arg: arg}, nil

	case *term.IsZero:
		switch inner := n.Arg.(type) {
		case term.Zero:
			return term.True{}, nil
		case *term.Succ:
			if isNumericValue(inner.Arg) {
				return term.False{}, nil
			}
		}
		arg, err := step(n.Arg)
		if err != nil {
			return nil, err
		}
		return &term.IsZero{Arg: arg}, nil

	case *term.TypeApp:
		if abs, ok := n.Term.(*term.TypeAbs); ok {
			return subst.TypeIntoTermTop(n.Ty, abs.Body)
		}
		inner, err := step(n.Term)
		if err != nil {
			return nil, err
		}
		return &term.TypeApp{Term: inner, Ty: n.Ty}, nil

	case *term.ExisUnpack:
		if pack, ok := n.Init.(*term.ExisPack); ok && IsValue(pack.Body) {
			shiftedVal, err := subst.Shift(pack.Body, 1, 0)
			if err != nil {
				return nil, err
			}
			withVal, err := subst.SubstTop(shiftedVal, n.Body)
			if err != nil {
				return nil, err
			}
			return subst.TypeIntoTermTop(pack.Hidden, withVal)
		}
		init, err := step(n.Init)
		if err != nil {
			return nil, err
		}
		return &term.ExisUnpack{TyName: n.TyName, VarName: n.VarName, Init: init, Body: n.Body}, nil

	case *term.ExisPack:
		if IsValue(n.Body) {
			return nil, noRuleApplies{}
		}
		body, err := step(n.Body)
		if err != nil {
			return nil, err
		}
		return &term.ExisPack{Hidden: n.Hidden, Body: body, As: n.As}, nil

	default:
		return nil, noRuleApplies{}
	}
}

// indexFromLabel converts a tuple projection label ("1", "2", ...)
// into a zero-based slice index.
func indexFromLabel(label string) (int, error) {
	n := 0
	if label == "" {
		return 0, errors.New(errors.EVL001, "eval", "", "empty tuple projection label")
	}
	for _, r := range label {
		if r < '0' || r > '9' {
			return 0, errors.New(errors.EVL001, "eval", "", "non-numeric tuple projection label %q", label)
		}
		n = n*10 + int(r-'0')
	}
	return n - 1, nil
}

// Eval drives step to a normal form, treating noRuleApplies as the
// ordinary "finished" signal rather than propagating it as an error.
func Eval(t term.Term) (term.Term, error) {
	for {
		next, err := step(t)
		if err != nil {
			if _, ok := err.(noRuleApplies); ok {
				return t, nil
			}
			return nil, err
		}
		t = next
	}
}
