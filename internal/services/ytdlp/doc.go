// Package ytdlp wraps the yt-dlp executable, the collaborator that downloads
// subtitle payloads and video metadata.
//
// Every invocation runs under a request-scoped timeout in a private temporary
// directory that is removed afterwards. Failures are reported as typed errors
// (ErrVideoUnavailable, ErrSubtitlesUnavailable, ErrRetrievalFailed,
// ErrInvalidURL) that wrap the services markers, so HTTP status mapping works
// with services.HTTPStatus. ClassifyPayload recognizes the legacy sentinel
// strings older fetchers returned in place of subtitle text.
package ytdlp
