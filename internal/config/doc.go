// Package config defines optional packaging defaults and provides helpers
// to load and save them in YAML format.
//
// The Config type holds fallback values for the runtime, framework,
// configuration and output flags. Flags always win over file defaults.
package config
