package api

import (
	"findex/internal/deps"
	"findex/internal/journal"
)

// SubsRequest asks for the cleaned subtitles of a video.
type SubsRequest struct {
	URL  string `json:"url" validate:"required,url,max=2048"`
	Lang string `json:"lang" validate:"omitempty,subtitle_lang"`
}

// SubsResponse carries cleaned subtitles or the reason they are missing.
type SubsResponse struct {
	Success   bool   `json:"success"`
	Subtitles string `json:"subtitles"`
	Error     string `json:"error"`
}

// VideoInfoRequest asks for video metadata.
type VideoInfoRequest struct {
	URL string `json:"url" validate:"required,url,max=2048"`
}

// VideoInfo is video metadata plus the best-effort English transcript.
type VideoInfo struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Uploader    string   `json:"uploader"`
	UploadDate  string   `json:"upload_date"`
	ViewCount   int64    `json:"view_count"`
	LikeCount   int64    `json:"like_count"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
	Transcript  *string  `json:"transcript"`
}

// AskRequest poses a question about a video.
type AskRequest struct {
	URL      string `json:"url" validate:"required,max=2048"`
	Question string `json:"question" validate:"required,max=2000"`
}

// AskResponse is the templated answer to an AskRequest.
type AskResponse struct {
	Answer       string `json:"answer"`
	VideoTitle   string `json:"video_title"`
	VideoChannel string `json:"video_channel"`
}

// HealthResponse reports service readiness.
type HealthResponse struct {
	Status       string        `json:"status"`
	Version      string        `json:"version,omitempty"`
	Dependencies []deps.Status `json:"dependencies,omitempty"`
	Journal      bool          `json:"journal"`
}

// RequestsResponse lists recent journal entries.
type RequestsResponse struct {
	Requests []journal.Entry `json:"requests"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
