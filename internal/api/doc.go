// Package api holds the request and response types of the HTTP API and the
// services behind each route.
//
// SubtitleService fetches a subtitle payload through yt-dlp, rejects empty
// payloads and legacy sentinel strings, and runs the transcript cleaning
// pipeline. An empty cleaned result is reported as ErrEmptyTranscript rather
// than an empty success. InfoService returns video metadata with a best-effort
// English transcript, and AskService renders a templated answer from it.
//
// Requests are validated with go-playground/validator struct tags; field names
// in messages follow the JSON tags. Errors carry services markers so the
// transport maps them to status codes with services.HTTPStatus. When a
// Recorder is configured every request appends one journal entry.
//
// JSON tags use snake_case to stay compatible with the browser extension.
package api
