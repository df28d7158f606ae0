// Package serverrun exposes a shared Run entrypoint used by the CLI to start
// the tailscope HTTP server, handling lifecycle and shutdown.
//
// Example:
//
//	opts := serverrun.Options{LogDir: "/var/log", HTTPAddr: ":8080", Config: config.Default()}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = serverrun.Run(ctx, opts)
package serverrun
