// Package config loads the server configuration from an optional .env file,
// an optional config.yaml and CONTRACTS_-prefixed environment variables, and
// validates it before any component starts.
package config
