// Package lang implements a small arithmetic language with user-defined
// procedures.
//
// Source text is tokenized by a [Lexer], parsed into a tree of [Node] values
// by [Parse], and evaluated against a chain of [Scope] values by [Eval]. An
// [Interpreter] ties the three together and owns the top-level scope that
// persists between inputs.
//
// # Grammar
//
// Informal EBNF:
//
//	program    → statement+ EOF
//	statement  → 'function' NAME '(' params ')' '{' statement+ '}'
//	           | NAME '=' expression
//	           | expression
//	params     → (NAME (',' NAME)*)?
//	expression → term (('+' | '-') term)*
//	term       → primary (('*' | '/') primary)*
//	primary    → NAME '(' args ')' | NAME | INT | FLOAT
//	args       → (expression (',' expression)*)?
//
// Statements are written one after another with no separator. A '#' starts
// a comment that runs to the end of the line.
//
// # Values
//
// Integers and floats are distinct. Addition, subtraction, and
// multiplication of two integers produce an integer; division always
// produces the exact quotient, as an integer when the divisor divides evenly
// and as a float otherwise. Procedures are values too and may be bound to any
// name.
//
// # Scoping
//
// Lookups search the current scope, then each parent in turn. Assignments
// always bind in the current scope, so assigning to a name that is bound only
// in an outer scope shadows it instead of changing it.
//
// Scoping is dynamic: each call creates a fresh scope whose parent is the
// scope of the caller, not the scope the procedure was defined in.
//
//	function inner() { y * 2 }
//	function outer(y) { inner() }
//	outer(21) # 42: inner sees outer's y
package lang
