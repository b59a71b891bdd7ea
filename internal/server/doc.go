// Package server assembles the cafe site into one HTTP server.
//
// # Routes
//
//   - /health: liveness, always "ok"
//   - /health/ready: 200 once the store answers a read, 503 otherwise
//   - /admin/...: the password-gated admin panel
//   - everything else: the public site
//
// # Listeners
//
// By default the server listens on server.http_addr. With tailscale.enabled it
// joins the tailnet as tailscale.hostname and serves on :80, or on :443 with
// tailnet-provisioned certificates when tailscale.https is set.
//
// Run blocks until its context is canceled and then shuts down within
// server.shutdown_timeout, closing the store last.
package server
