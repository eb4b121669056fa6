// Package main hosts the bookshelf CLI entrypoint and command graph.
//
// Each subcommand is one user action: it resolves configuration, opens the
// catalog store, calls exactly one store operation and renders the result as
// a table, plain lines, or JSON. Catalog rules live in internal/catalog; this
// package only gathers input and formats output.
package main
