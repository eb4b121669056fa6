// Package config loads, normalizes, and validates bookshelf configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the BOOKSHELF_DATA_FILE environment fallback. The
// Config type holds every knob the CLI needs: where the catalog file lives,
// how logs are written, and whether tables are coloured.
//
// Obtain settings through this package so callers receive absolute paths and
// canonical log settings.
package config
