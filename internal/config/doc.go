// Package config provides configuration loading, merging, and validation for
// the client and the development backend.
//
// Configuration is assembled from multiple sources; for every field the first
// source providing a non-zero value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The entry points are [GetClientConfig] and [GetDevServerConfig].
package config
