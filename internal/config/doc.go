// Package config loads editor configuration from a TOML file and can
// watch the file for changes to support live reload.
//
// A missing configuration file is not an error: defaults apply. Values
// absent from the file keep their defaults as well.
package config
