// Package resolver recovers the project version from the text of a CMake
// build-configuration file.
//
// Resolution scans for the first project(...) declaration, takes the token
// that follows the VERSION marker inside it and validates it as
// MAJOR.MINOR.PATCH[.TWEAK]. The outcome is all-or-nothing: either a
// validated VersionString or a *ResolveError carrying one of three kinds.
// Reading the file is left to the caller; ResolveFile is a thin helper over
// core.FileSystem that reports read failures as *LoadError.
package resolver
