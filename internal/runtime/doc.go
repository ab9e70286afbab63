// Package runtime provides the execution context for gitmerge commands.
//
// It encapsulates shared dependencies and configuration needed by actions,
// such as the repository handle, logger, and repository configuration.
package runtime
