// Package html provides a Normaliser implementation for HTML documents.
// It converts markup to GitHub-flavoured markdown, keeping headings, lists,
// links, emphasis, tables and code blocks, and dropping scripts and styles.
package html
