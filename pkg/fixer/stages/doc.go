// Package stages implements the built-in fixer stages. Each stage fixes the
// violations of one markdownlint rule and registers itself with
// fixer.DefaultRegistry.
//
// Stages only see the line sequence. They classify lines again on every call
// because an earlier stage may have changed them.
package stages
