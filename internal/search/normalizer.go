package search

import (
	"encoding/json"
	"fmt"

	"scenemedia/be/internal/provider"
)

const (
	// UnknownAuthor is used for videos whose record carries no user.
	UnknownAuthor = "Unknown"

	videoThumbnailPattern = "https://i.vimeocdn.com/video/%s_640x360.jpg"
	videoQuality          = "medium"
)

type videoVariant struct {
	URL string `json:"url"`
}

// NormalizeImage tags an image record. Image records are already flat.
func NormalizeImage(record provider.Record) MediaItem {
	preview, _ := stringField(record, "previewURL")
	content, ok := stringField(record, "largeImageURL")
	if !ok || content == "" {
		content, _ = stringField(record, "webformatURL")
	}
	tags, _ := stringField(record, "tags")
	author, _ := stringField(record, "user")

	return MediaItem{
		MediaType:      MediaTypeImage,
		PreviewURL:     preview,
		ContentURL:     content,
		Tags:           tags,
		Author:         author,
		ProviderFields: remaining(record, "previewURL", "largeImageURL", "tags", "user"),
	}
}

// NormalizeVideo flattens a video record into the image shape. It never fails: missing
// variants leave ContentURL empty and a missing picture id leaves PreviewURL empty.
func NormalizeVideo(record provider.Record) MediaItem {
	var content string
	if raw, ok := record["videos"]; ok {
		var variants map[string]videoVariant
		if err := json.Unmarshal(raw, &variants); err == nil {
			content = variants[videoQuality].URL
		}
	}

	var preview string
	if id, ok := stringField(record, "picture_id"); ok && id != "" {
		preview = fmt.Sprintf(videoThumbnailPattern, id)
	}

	tags, _ := stringField(record, "tags")
	author, _ := stringField(record, "user")
	if author == "" {
		author = UnknownAuthor
	}

	return MediaItem{
		MediaType:      MediaTypeVideo,
		PreviewURL:     preview,
		ContentURL:     content,
		Tags:           tags,
		Author:         author,
		ProviderFields: remaining(record, "videos", "tags", "user"),
	}
}

// stringField reads a string or number field as text.
func stringField(record provider.Record, key string) (string, bool) {
	raw, ok := record[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

func remaining(record provider.Record, lifted ...string) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(record))
	for k, v := range record {
		out[k] = v
	}
	for _, k := range lifted {
		delete(out, k)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
