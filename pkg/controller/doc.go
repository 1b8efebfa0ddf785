// Package controller contains HTTP middlewares and helper handlers shared by
// the web front-end.
//
// Provided middlewares:
//   - CORS: Sets CORS headers for a configured origin and answers OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - WithMetrics: Observes request latency per route pattern.
//   - WithSecurityHeaders: Sets nosniff, frame and XSS protection headers.
//
// Provided helpers:
//   - Pprof: Returns a router exposing net/http/pprof handlers.
package controller
