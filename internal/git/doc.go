// Package git provides low-level Git operations.
//
// It wraps go-git and, where go-git has no equivalent, the git binary:
//   - Repository access (open, HEAD, branch resolution, identity)
//   - Branch management (checkout, local deletion)
//   - Merge analysis, fast-forward and three-way merges with conflict detection
//   - Remote operations (fetch, push, remote branch deletion) with pluggable credentials
//
// This package should be the only place where git is driven directly.
package git
