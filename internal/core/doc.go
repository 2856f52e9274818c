// Package core holds the small interfaces and constants shared across
// recipekit packages: filesystem access, marshaling and file permissions.
// Production code uses OSFileSystem; tests use MockFileSystem.
package core
