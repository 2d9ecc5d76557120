// Package zap provides a zap-backed implementation of the log.Logger
// abstraction for production use.
package zap
