// Package config handles configuration loading for the cafe site.
//
// # Overview
//
// Configuration is loaded from YAML or TOML files with environment variable
// expansion. The format follows the file extension (.toml is TOML, anything
// else is YAML). Unset fields receive defaults before validation.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from CAFESITE_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/cafesite/site.yaml
//  3. ~/.config/cafesite/site.yaml
//
// `cafesite init` writes a starter file with a random session secret.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	admin:
//	  session_secret: "${CAFESITE_SESSION_SECRET}"
//
// Syntax: ${VAR_NAME}. Unset variables expand to an empty string.
//
// # Configuration Sections
//
//	server:
//	  http_addr: "127.0.0.1:8080"
//	  shutdown_timeout: "5s"
//
//	database:
//	  path: "/var/lib/cafesite/site.db"
//	  driver: "sqlite"      # sqlite (pure Go) or sqlite3 (cgo)
//
//	site:
//	  name: "Cafe"
//	  base_url: "https://cafe.example.com"
//
//	admin:
//	  session_secret: "${CAFESITE_SESSION_SECRET}"   # empty: random per process
//	  session_lifetime: "12h"
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
//	tailscale:
//	  enabled: false
//	  hostname: "cafesite"
//	  auth_key: "${TS_AUTHKEY}"
//	  https: true
//
// # Usage
//
//	path, err := config.DefaultPath()
//	cfg, err := config.Load(path)
package config
