// Package check implements the syntax-directed type checker shared by
// the simply-typed, record-subtyping, and System F calculi, plus the
// subtype/join/meet lattice records and arrows form once Top and Bot
// are in play.
package check

import "github.com/lambdac/lambdac/internal/term"

// Subtype reports whether s is a subtype of t: structural equality,
// Top as the top of the lattice, Bot as the bottom, width/depth/
// permutation subtyping on records (s may have extra fields; shared
// fields must themselves be subtypes), and the usual contravariant
// argument / covariant result rule on arrows.
func Subtype(s, t term.Type) bool {
	if s.Equal(t) {
		return true
	}
	if _, ok := t.(term.BotTy); ok {
		return false
	}
	if _, ok := s.(term.BotTy); ok {
		return true
	}
	if _, ok := t.(term.TopTy); ok {
		return true
	}
	switch tt := t.(type) {
	case *term.RecordTy:
		ss, ok := s.(*term.RecordTy)
		if !ok {
			return false
		}
		for _, tf := range tt.Fields {
			sty, ok := ss.Lookup(tf.Label)
			if !ok || !Subtype(sty, tf.Ty) {
				return false
			}
		}
		return true
	case *term.ArrowTy:
		ss, ok := s.(*term.ArrowTy)
		if !ok {
			return false
		}
		return Subtype(tt.T1, ss.T1) && Subtype(ss.T2, tt.T2)
	default:
		return false
	}
}

// Join computes the least upper bound of s and t in the subtyping
// lattice. It always terminates with some type: Top is returned
// whenever no tighter bound can be computed, matching the lattice's
// Top-as-fallback convention.
func Join(s, t term.Type) term.Type {
	if s.Equal(t) {
		return s
	}
	if _, ok := s.(term.BotTy); ok {
		return t
	}
	if _, ok := t.(term.BotTy); ok {
		return s
	}
	switch ss := s.(type) {
	case *term.ArrowTy:
		tt, ok := t.(*term.ArrowTy)
		if !ok {
			return term.TopTy{}
		}
		argMeet, ok := Meet(ss.T1, tt.T1)
		if !ok {
			return term.TopTy{}
		}
		return &term.ArrowTy{T1: argMeet, T2: Join(ss.T2, tt.T2)}
	case *term.RecordTy:
		tt, ok := t.(*term.RecordTy)
		if !ok {
			return term.TopTy{}
		}
		var fields []term.TyField
		for _, sf := range ss.Fields {
			if tf, ok := tt.Lookup(sf.Label); ok {
				fields = append(fields, term.TyField{Label: sf.Label, Ty: Join(sf.Ty, tf)})
			}
		}
		return &term.RecordTy{Fields: fields}
	default:
		return term.TopTy{}
	}
}

// Meet computes the greatest lower bound of s and t. ok is false when
// no meet exists (a shared record label whose field types have no
// meet), per the spec's "undefined meet poisons the whole meet" rule.
func Meet(s, t term.Type) (term.Type, bool) {
	if s.Equal(t) {
		return s, true
	}
	if _, ok := s.(term.TopTy); ok {
		return t, true
	}
	if _, ok := t.(term.TopTy); ok {
		return s, true
	}
	switch ss := s.(type) {
	case *term.ArrowTy:
		tt, ok := t.(*term.ArrowTy)
		if !ok {
			return nil, false
		}
		resMeet, ok := Meet(ss.T2, tt.T2)
		if !ok {
			return nil, false
		}
		return &term.ArrowTy{T1: Join(ss.T1, tt.T1), T2: resMeet}, true
	case *term.RecordTy:
		tt, ok := t.(*term.RecordTy)
		if !ok {
			return nil, false
		}
		fields := make([]term.TyField, len(ss.Fields))
		copy(fields, ss.Fields)
		for _, tf := range tt.Fields {
			if _, already := ss.Lookup(tf.Label); already {
				continue
			}
			fields = append(fields, tf)
		}
		for _, sf := range ss.Fields {
			if tf, ok := tt.Lookup(sf.Label); ok {
				m, ok := Meet(sf.Ty, tf)
				if !ok {
					return nil, false
				}
				for i := range fields {
					if fields[i].Label == sf.Label {
						fields[i].Ty = m
					}
				}
			}
		}
		return &term.RecordTy{Fields: fields}, true
	default:
		return nil, false
	}
}
