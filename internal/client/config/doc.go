// Package config loads runtime configuration for the inbox CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   base URL of the inbox server
//	-t string   path of the session token file
//	-w int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "token_file": "/home/me/.gophinbox_token",
//	  "request_timeout": "10s"
//	}
//
// Empty JSON fields leave the earlier value in place.
package config
