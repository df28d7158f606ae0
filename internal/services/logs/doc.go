// Package logsvc exposes the log directory over service-level operations:
// bounded tails, incremental tail streams, live follows, and file listings.
// It layers request validation, CEL filtering, and logging on top of the
// tail engine; transports stay thin.
package logsvc
