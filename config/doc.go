// Package config loads and validates application configuration.
//
// Configuration is resolved in layers: built-in defaults, an optional
// config.yaml file, and environment variables prefixed with PATHFINDER_
// (a .env file is honored when present). The domain lexicons that drive
// intent detection, entity extraction, and place resolution ship as
// defaults and can be overridden wholesale from the config file.
package config
