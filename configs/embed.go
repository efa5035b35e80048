// Package configs embeds the configuration templates written by
// `physref config init`.
//
// Templates:
//   - user-config.example.yaml: machine-wide settings at
//     ~/.config/physref/config.yaml (images, logging, output defaults)
//   - project-config.example.yaml: .physref.yaml in a working directory,
//     usually pointing data.dir at a local copy of the tables
//
// Precedence is defined by config.Load: defaults, user config, project
// config, then PHYSREF_* environment variables.
package configs

import _ "embed"

// UserConfigTemplate is written by `physref config init`.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is written by `physref config init --project`.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
