// Package config manages gitmerge configuration.
//
// It handles:
//   - Repository-specific configuration stored in .git/.gitmerge_config
//   - The integration strategy (fast-forward only or three-way merge)
package config
