package ytdlp

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// VideoInfo is the metadata subset findex reads from yt-dlp's JSON dump.
type VideoInfo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Uploader    string   `json:"uploader"`
	UploadDate  string   `json:"upload_date"`
	ViewCount   int64    `json:"view_count"`
	LikeCount   int64    `json:"like_count"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
}

type infoDump struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    float64  `json:"duration"`
	Uploader    string   `json:"uploader"`
	Channel     string   `json:"channel"`
	UploadDate  string   `json:"upload_date"`
	ViewCount   int64    `json:"view_count"`
	LikeCount   int64    `json:"like_count"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
}

const unknownValue = "Unknown"

func decodeInfo(data []byte) (VideoInfo, error) {
	var dump infoDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return VideoInfo{}, fmt.Errorf("decode yt-dlp json: %w", err)
	}
	info := VideoInfo{
		ID:          dump.ID,
		Title:       strings.TrimSpace(dump.Title),
		Description: dump.Description,
		Duration:    int(math.Round(dump.Duration)),
		Uploader:    strings.TrimSpace(dump.Uploader),
		UploadDate:  strings.TrimSpace(dump.UploadDate),
		ViewCount:   dump.ViewCount,
		LikeCount:   dump.LikeCount,
		Tags:        dump.Tags,
		Categories:  dump.Categories,
	}
	if info.Title == "" {
		info.Title = unknownValue
	}
	if info.Uploader == "" {
		info.Uploader = strings.TrimSpace(dump.Channel)
	}
	if info.Uploader == "" {
		info.Uploader = unknownValue
	}
	if info.Tags == nil {
		info.Tags = []string{}
	}
	if info.Categories == nil {
		info.Categories = []string{}
	}
	return info, nil
}
