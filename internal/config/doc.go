// Package config defines the beacon settings and provides helpers to load,
// validate, save and watch them in YAML format.
//
// Settings hold the dit length, the enabled channels, the log level and the
// location of the saved-message library.
package config
