// Package msbuild wraps the build tool CLI (`dotnet msbuild`) as a
// subprocess: restoring projects, evaluating resolved project properties
// and running named build targets with forwarded /p: properties.
//
// The build engine only ever runs out of process, so the lock file can be
// read with an ordinary JSON parser and no resolver library has to share
// the process with the engine.
package msbuild
