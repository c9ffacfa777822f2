// Package config loads CreaHut settings from TOML and the process environment.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/creahut/config.toml
//  3. If the file does not exist, return Default()
//  4. Fields that are missing or blank keep their defaults
//
// LoadEnv reads KEY=value pairs from a .env file into the process environment.
// Variables already set in the shell win. With no path it tries ./.env and
// ignores its absence; an explicit path must exist.
//
// # TOML Format
//
//	endpoint = "https://api.openai.com/v1/images/generations"
//	model = "dall-e-2"
//	size = "512x512"
//	style_suffix = ", coloring book page, clean line art"
//	api_key_env = "OPENAI_API_KEY"
//	placeholder_interval = "1s"
//	request_timeout = "90s"
//	log_file = "~/.local/share/creahut/creahut.log"
//	log_level = "info"
//
// Durations use time.ParseDuration syntax. A non-positive placeholder_interval
// falls back to one second; a request_timeout of zero means no timeout. Tilde
// paths are expanded against the home directory.
//
// # Credentials
//
// The API key itself never lives in Config. APIKey reads the variable named by
// api_key_env at call time, so the key can be supplied after startup.
package config
