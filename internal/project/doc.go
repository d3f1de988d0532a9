// Package project knows the on-disk artifacts surrounding an MSBuild
// project: locating the project file itself, reading the dependency lock
// file (project.assets.json) produced by restore, and augmenting the
// shared Directory.Build.props file with the packaging targets dependency.
package project
