// Package vibration provides a simulated vibration motor.
//
// Motor accepts a whole off/on pattern and steps through it on its own clock,
// reporting every motor state change to a sink.
package vibration
