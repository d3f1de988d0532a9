// Package deb implements the packaging workflow: an optional restore plus
// extension presence check against the dependency lock file, followed by a
// single CreateDeb dispatch to the build tool with the user's parameters
// forwarded as build properties.
package deb
