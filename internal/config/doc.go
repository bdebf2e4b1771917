// Package config loads cmexport settings from defaults, YAML files, a .env file and
// CMEXPORT_* environment variables, in that order of increasing precedence.
package config
