// Package config loads portbridge settings from a TOML file and PORTBRIDGE_*
// environment variables.
package config
