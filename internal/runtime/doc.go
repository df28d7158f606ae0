// Package runtime wires configuration, the log directory, and the tail
// engine into a single handle the services and transports share.
package runtime
