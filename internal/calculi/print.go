package calculi

import (
	"fmt"
	"strings"

	"github.com/lambdac/lambdac/internal/term"
)

// freshen appends "'" to name until it no longer collides with
// anything already in scope, so an inner binder that shadows an outer
// one of the same name prints with one more prime than the outer one.
func freshen(name string, scope []string) string {
	for contains(scope, name) {
		name += "'"
	}
	return name
}

func contains(scope []string, name string) bool {
	for _, s := range scope {
		if s == name {
			return true
		}
	}
	return false
}

// PrintTerm renders t back to surface syntax, resolving every de
// Bruijn index against scope (innermost name last) and disambiguating
// shadowed binder names the same way at every nesting level.
func PrintTerm(t term.Term, scope []string) string {
	switch n := t.(type) {
	case *term.Var:
		if n.Index < 0 || n.Index >= len(scope) {
			return fmt.Sprintf("<scoping error: index %d against %d names>", n.Index, len(scope))
		}
		return scope[len(scope)-1-n.Index]

	case *term.Abs:
		name := freshen(n.Name, scope)
		inner := append(append([]string{}, scope...), name)
		if n.Ty != nil {
			return fmt.Sprintf("(lambda %s:%s. %s)", name, PrintType(n.Ty, scope), PrintTerm(n.Body, inner))
		}
		return fmt.Sprintf("(lambda %s. %s)", name, PrintTerm(n.Body, inner))

	case *term.App:
		return fmt.Sprintf("(%s %s)", PrintTerm(n.Fn, scope), PrintTerm(n.Arg, scope))

	case *term.If:
		return fmt.Sprintf("if %s then %s else %s", PrintTerm(n.Cond, scope), PrintTerm(n.Then, scope), PrintTerm(n.Else, scope))

	case *term.Let:
		name := freshen(n.Name, scope)
		inner := append(append([]string{}, scope...), name)
		return fmt.Sprintf("let %s = %s in %s", name, PrintTerm(n.Init, scope), PrintTerm(n.Body, inner))

	case *term.Tuple:
		parts := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			parts[i] = PrintTerm(f, scope)
		}
		return "(" + strings.Join(parts, ", ") + ")"

	case *term.Record:
		parts := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			parts[i] = fmt.Sprintf("%s=%s", f.Label, PrintTerm(f.Value, scope))
		}
		return "{" + strings.Join(parts, ", ") + "}"

	case *term.Proj:
		return fmt.Sprintf("%s.%s", PrintTerm(n.Rec, scope), n.Label)

	case term.True:
		return "true"
	case term.False:
		return "false"
	case term.Zero:
		return "0"

	case *term.Succ:
		return fmt.Sprintf("succ %s", PrintTerm(n.Arg, scope))
	case *term.Pred:
		return fmt.Sprintf("pred %s", PrintTerm(n.Arg, scope))
	case *term.IsZero:
		return fmt.Sprintf("iszero %s", PrintTerm(n.Arg, scope))

	case *term.TypeAbs:
		name := freshen(n.Name, scope)
		inner := append(append([]string{}, scope...), name)
		return fmt.Sprintf("(lambda %s. %s)", name, PrintTerm(n.Body, inner))

	case *term.TypeApp:
		return fmt.Sprintf("%s [%s]", PrintTerm(n.Term, scope), PrintType(n.Ty, scope))

	case *term.ExisPack:
		return fmt.Sprintf("{*%s, %s} as %s", PrintType(n.Hidden, scope), PrintTerm(n.Body, scope), PrintType(n.As, scope))

	case *term.ExisUnpack:
		tyName := freshen(n.TyName, scope)
		withTy := append(append([]string{}, scope...), tyName)
		varName := freshen(n.VarName, withTy)
		withBoth := append(withTy, varName)
		return fmt.Sprintf("let {%s,%s} = %s in %s", tyName, varName, PrintTerm(n.Init, scope), PrintTerm(n.Body, withBoth))

	default:
		return fmt.Sprintf("<unprintable %T>", t)
	}
}

func numeralValue(s *term.Succ) (int, bool) {
	n := 1
	cur := s.Arg
	for {
		switch c := cur.(type) {
		case term.Zero:
			return n, true
		case *term.Succ:
			n++
			cur = c.Arg
		default:
			return 0, false
		}
	}
}

// PrintType renders ty, resolving TyVar against the same scope a
// surrounding PrintTerm call is using (type and term variables share
// one index space).
func PrintType(ty term.Type, scope []string) string {
	switch t := ty.(type) {
	case term.BoolTy:
		return "Bool"
	case term.NatTy:
		return "Nat"
	case term.TopTy:
		return "Top"
	case term.BotTy:
		return "Bot"
	case *term.ArrowTy:
		return fmt.Sprintf("%s->%s", parenArrow(t.T1, scope), PrintType(t.T2, scope))
	case *term.RecordTy:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = fmt.Sprintf("%s:%s", f.Label, PrintType(f.Ty, scope))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *term.TupleTy:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = PrintType(e, scope)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *term.TyVar:
		if t.Index < 0 || t.Index >= len(scope) {
			return fmt.Sprintf("<scoping error: index %d against %d names>", t.Index, len(scope))
		}
		return scope[len(scope)-1-t.Index]
	case *term.IdTy:
		return t.Name
	case *term.UnivTy:
		name := freshen(t.Name, scope)
		inner := append(append([]string{}, scope...), name)
		return fmt.Sprintf("All %s.%s", name, PrintType(t.Body, inner))
	case *term.ExisTy:
		name := freshen(t.Name, scope)
		inner := append(append([]string{}, scope...), name)
		return fmt.Sprintf("Some %s.%s", name, PrintType(t.Body, inner))
	default:
		return fmt.Sprintf("<unprintable %T>", ty)
	}
}

func parenArrow(t term.Type, scope []string) string {
	if _, ok := t.(*term.ArrowTy); ok {
		return "(" + PrintType(t, scope) + ")"
	}
	return PrintType(t, scope)
}
