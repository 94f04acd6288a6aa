// Package logger wraps zap with:
//   - a global sugared logger writing a compact console format to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and adjustment,
//   - leveled shortcuts (Infof, DebugKV, ErrorKV, etc.).
//
// Services take a context and pull their logger out of it, so names and
// fields attached upstream follow every log line.
package logger
