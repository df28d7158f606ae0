// Package client provides the `tailscope` command-line client.
//
// The CLI talks to the tailscope HTTP API to read logs and manage the
// secondary server registry from a terminal. It is primarily intended
// for developers and operators.
//
// # Address configuration
//
// The HTTP base URL is discovered by the application that embeds the
// commands via a BaseURLFunc. When using the standalone binary, it
// reads TAILSCOPE_HTTP and defaults to http://127.0.0.1:8080.
//
// Usage
//
//	tailscope logs tail --file syslog -n 50
//	tailscope logs tail --file apache/access.log -k ERROR
//	tailscope logs tail --file app.log --filter 'text.startsWith("POST")'
//	tailscope logs list
//	tailscope logs follow --file syslog -k panic
//
//	tailscope servers register --name web-1 --url http://web-1:8080
//	tailscope servers list
//	tailscope servers health
//	tailscope servers files --name web-1
//	tailscope servers unregister --name web-1
//
//	tailscope aggregate logs --file syslog -n 100
//	tailscope aggregate search -k "connection refused" --servers web-1,web-2
package client
