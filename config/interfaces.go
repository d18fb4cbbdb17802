package config

// Config is an interface that all configuration structs must implement - this includes:
// - the run config
// - source configs
type Config interface {
	Validate() error
	Identifier() string
}
