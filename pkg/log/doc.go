// Package log provides a logging abstraction for fairdraw components.
//
// The package defines a Logger interface that can be implemented by any
// logging library. A zerolog adapter and a no-op logger are provided; the
// library defaults to the no-op logger so that embedding applications stay
// silent unless they opt in.
//
// # Usage
//
// Use the provided zerolog adapter:
//
//	logger := log.NewZerologAdapter()
//
// Or wrap an existing zerolog.Logger:
//
//	logger := log.NewZerologAdapterWithLogger(zl)
//
// Implement the Logger interface to integrate with other logging
// infrastructure.
package log
