// Package tns reads and writes Oracle network directory files
// (tnsnames.ora), which bind symbolic service names to connection
// descriptor trees.
//
// # Grammar
//
// Informal EBNF:
//
//	Document    → { EmptyLine | Comment | Entry } EOF
//	EmptyLine   → WS* EOL
//	Comment     → '#' { any char except CR, LF } EOL
//	Entry       → ServiceName { ',' ServiceName } '=' Parameter
//	Parameter   → '(' Key '=' Value ')'
//	Value       → Token | Parameter { Parameter }
//	ServiceName → NameChar+
//	Key         → NameChar+
//	Token       → (NameChar | '-')+
//	NameChar    → letter | digit | '.' | '_'
//	WS          → ' ' | '\t'
//	EOL         → CR LF
//
// Spaces, tabs, and line terminators may surround every token inside an
// entry. Comments and blank lines must start at the beginning of a line and
// are discarded. A Value that begins with a token character is always a
// Token; only otherwise is it parsed as a list of nested parameters, so a
// value never mixes the two.
//
// Line terminators are CR LF. A bare LF is a syntax error unless
// [WithBareLineFeed] is given.
//
// # Example
//
//	# production
//	SALES,SALES.EXAMPLE.COM =
//	  (DESCRIPTION =
//	    (ADDRESS = (PROTOCOL = TCP)(HOST = db1-host)(PORT = 1521))
//	    (CONNECT_DATA = (SERVICE_NAME = sales.example.com))
//	  )
//
// # Operations
//
//   - [ParseString], [ParseReader], [ParseFile] build a [Document], or fail
//     with a [*SyntaxError] that carries the failing position.
//   - [Document.Format] writes the canonical form. Comments and the original
//     layout are not preserved.
//   - [Document.Expand] splits multi-service entries into single-service
//     entries that share one descriptor.
//   - [ExpandFileInDirectory] expands dir/tnsnames.ora into a new temporary
//     directory.
//   - [Document.Lookup] resolves a service name to its entry.
package tns
