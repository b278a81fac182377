// Package config loads, parses and validates application settings from
// environment variables (VOCAB_*), an optional YAML file and an optional
// .env file. It keeps configuration details out of the business logic.
package config
