// Package manifest reads forge's HCL manifests (Project.hcl, Workspace.hcl
// and Config.hcl) and translates them into the format-agnostic types of
// package model.
//
// Decoding follows a two-step shape: gohcl decodes a file into the block
// structs of schema.go, then the translate functions validate and convert
// them. Relative paths in a manifest are anchored to the manifest's
// directory during translation, so the model only ever holds absolute paths.
package manifest
