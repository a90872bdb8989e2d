// Package errors centralizes lambdac's error taxonomy: one code per
// phase-specific failure, plus a structured Report type that carries
// enough context for the driver to format a diagnostic line without
// the rest of the pipeline needing to know about presentation.
package errors

// Error codes, grouped by the phase that raises them.
const (
	// Lexer/parser phase.
	LEX001 = "LEX001" // illegal character
	PAR001 = "PAR001" // unexpected token

	// AST-builder phase.
	BLD001 = "BLD001" // UnboundName, unsupported form, or missing required annotation
	BLD002 = "BLD002" // DuplicateLabel

	// Shift/subst engine.
	SUB001 = "SUB001" // ScopingError (shift would produce a negative index), or a term/type form the walk does not handle

	// Evaluator.
	EVL001 = "EVL001" // MissingLabel at projection

	// Checker.
	CHK001 = "CHK001" // any typing/reconstruction failure without a more specific code below
	CHK002 = "CHK002" // ParamMismatch
	CHK003 = "CHK003" // NotArrow
	CHK004 = "CHK004" // NotRecord
	CHK005 = "CHK005" // NotUniv
	CHK006 = "CHK006" // NotExis
	CHK007 = "CHK007" // IfBranchMismatch
	CHK008 = "CHK008" // MissingLabel (static projection)
	CHK009 = "CHK009" // ScopingError (unpack leaks its TyVar)

	// Reconstructor/unifier.
	REC001 = "REC001" // UnifyFail
	REC002 = "REC002" // OccursCheckFail
)
