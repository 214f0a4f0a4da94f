// Package config loads, normalizes, and validates findex configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a local .env file, and honours
// environment overrides such as BACKEND_HOST, BACKEND_PORT and DEV_ENV. The
// Config type centralizes every knob the API server and CLI need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
