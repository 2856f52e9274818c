// Package manifest reads and stamps the project version in downstream
// manifest files (vcpkg.json, conandata.yml, pyproject.toml, plain VERSION
// files, or anything a regex can address) so they stay in step with the
// version declared in CMakeLists.txt.
package manifest
