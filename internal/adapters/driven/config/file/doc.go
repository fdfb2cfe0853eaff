// Package file provides the file-based SourceLoader.
// It reads doc sources and optional fetch settings from YAML, JSON or TOML.
//
// YAML and JSON files hold either a bare list of sources or an object with
// a sources key and settings. TOML files always use the object form with
// [[sources]] tables.
package file
