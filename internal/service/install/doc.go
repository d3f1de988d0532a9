// Package install augments the shared Directory.Build.props file with a
// dependency on the packaging targets package, so projects pick up the
// CreateDeb target without hand-editing build files.
package install
