// Package server exposes the findex HTTP API.
//
// Routes:
//
//	POST /youtube/subs         cleaned subtitles for a video
//	POST /youtube/video-info   metadata plus best-effort English transcript
//	POST /ask                  templated answer about a video
//	GET  /health               dependency readiness
//	GET  /api/requests         recent request journal entries
//
// Every route also answers with a trailing slash. Handlers decode JSON,
// delegate to the api services, and map errors to status codes with
// services.HTTPStatus. The middleware chain assigns request IDs, applies CORS,
// enforces the optional bearer token and writes one access log line per
// request.
//
// A Server holds an exclusive flock on its lock file while running so two
// instances never share a state directory.
package server
