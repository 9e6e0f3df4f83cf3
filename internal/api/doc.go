// Package api serves the snipdayd HTTP endpoints on a chi router.
//
//	GET  /snippet   200 {name, code, timestamp, duration} or 404
//	POST /submit    201, 400 or 403 with a plain-text reason
//	GET  /healthz   liveness
//
// Errors are plain text so clients can display them as-is. Every request
// passes through RealIP, RequestID, Logger, Recoverer and CORS.
package api
