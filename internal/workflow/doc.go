// Package workflow runs the packaging steps for a recipe: resolve the
// version, declare requirements, configure, build and install through an
// external BuildTool, and copy the license into the package directory.
//
// Version resolution always runs first. If it fails nothing else runs.
package workflow
