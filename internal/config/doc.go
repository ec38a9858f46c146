// Package config provides configuration loading, merging, and validation
// facilities for the vault engine.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables (prefixed VAULT_)
//  2. JSON config file (path taken from VAULT_CONFIG)
//
// Remote store credentials are deliberately accepted from the environment
// only: they are never read from the JSON file, so no deployment can end up
// with secrets committed inside a config artifact.
//
// The main entry point is [GetConfig].
package config
