// Package migrations holds the versioned schema. Each file registers its
// migrations from init(); importing the package for side effects is enough
// for the CLI and the server to see them.
package migrations
