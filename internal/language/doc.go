// Package language normalizes subtitle language requests.
//
// Callers pass whatever the client sent in the lang field (a two-letter code,
// a three-letter ISO 639-2 code, an English word such as "german", or a BCP-47
// tag like "pt-BR"). Canonicalize turns that into the tag handed to yt-dlp's
// --sub-langs flag; DisplayName renders it for humans.
package language
