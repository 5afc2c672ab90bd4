// Package cliconfig provides runtime settings for the serverify CLI.
//
// Settings are layered with the following precedence (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables (SERVERIFY_* prefix)
//  3. Settings file (--settings, YAML, read with koanf)
//  4. Default values
//
// The source of every value is tracked in CLIConfig.Sources.
package cliconfig
