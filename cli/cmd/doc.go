// Package cmd implements the tnsora subcommands.
//
// Commands read the input described by [Input], stored in the context by
// [WithInput], and write results to the writer stored by [WithOutput]
// (standard output by default).
//
//   - fmt:     print the canonical form (native, json, or yaml)
//   - expand:  split multi-service entries
//   - lookup:  print the entry for one service
//   - filter:  print the entries matching an expression
//   - version: print the program version
package cmd
