// Package content decides which changed files are blog posts and reads their slugs.
//
// Paths handled here are always repository-relative and slash separated, the
// way git prints them, regardless of the host OS.
package content
