// Package cli contains the command line interface for tnsora.
//
// # Usage
//
//	tnsora [flags] <command> [args]
//
// Input is read from --source (repeatable; "-" is stdin) or, when no source
// is given, from $TNS_ADMIN/tnsnames.ora. Files are decoded from --encoding
// (default utf-8). Lines must end with CR LF unless --bare-lf is given.
//
// # Commands
//
//	fmt [native|json|yaml]   print the canonical form (default command)
//	expand [--dir DIR]       split multi-service entries
//	lookup NAME [--param P]  print the entry for a service
//	filter EXPR [--expand]   print entries matching an expr-lang expression
//	version                  print the version
//
// # Configuration
//
// Flag values may also come from, in increasing precedence:
//
//   - $XDG_CONFIG_HOME/tnsora/config.json
//   - $XDG_CONFIG_HOME/tnsora/config.yaml (keys may use - or _)
//   - environment variables TNSORA_<FLAG>, for example TNSORA_LOG_LEVEL
//   - command-line flags
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn, error
//   - --log-format: json, text
//   - --log-time-layout: RFC3339, Kitchen, none, or a Go layout
//   - --[no-]log-caller, --[no-]log-pretty
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o tnsora .
//
// It adds these flags:
//
//   - --pprof-mode: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
//     thread, trace
//   - --pprof-dir: profile output directory (default under the user cache
//     directory)
package cli
