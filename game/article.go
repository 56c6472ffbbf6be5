package game

import "time"

// Article is a piece of content published by an actor on a platform.
//
// Veracity is meaningful only for AI authorship and is cleared before the
// article leaves the engine (Sanitized).
type Article struct {
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	PolishedContent string    `json:"polished_content,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	Source          string    `json:"source,omitempty"`
	Author          Actor     `json:"author"`
	TargetPlatform  string    `json:"target_platform"`
	Veracity        string    `json:"veracity,omitempty"`
	PublishedAt     time.Time `json:"published_at"`
}

// EvaluationContent returns the text scored and shown to crowds: the polished
// content when present, otherwise the raw content.
func (a Article) EvaluationContent() string {
	if a.PolishedContent != "" {
		return a.PolishedContent
	}
	return a.Content
}

// Sanitized returns a copy with the veracity cleared for external exposure.
func (a Article) Sanitized() Article {
	a.Veracity = ""
	return a
}
