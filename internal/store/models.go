// Package store provides persistence for extracted pollsters and labelled cases.
package store

import (
	"crypto/sha256"
	"encoding/hex"
)

// Extraction methods
const (
	MethodChunk = "chunk"
	MethodRegex = "regex"
)

// Extraction records one pollster found in one sentence of a document.
type Extraction struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Sentence  string `json:"sentence"`
	Pollster  string `json:"pollster"`
	Method    string `json:"method"` // "chunk" | "regex"
	CreatedAt int64  `json:"createdAt"`
}

// Case is a labelled text block. Positive cases carry the roster name found
// in the block; negative cases have no pollster.
type Case struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Pollster  string `json:"pollster,omitempty"`
	Positive  bool   `json:"positive"`
	Source    string `json:"source,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// ExtractionID derives a stable ID so re-running a document upserts in place.
func ExtractionID(url, sentence, method string) string {
	return hashID(url, sentence, method)
}

// CaseID derives a stable ID from the case content.
func CaseID(text, pollster string) string {
	return hashID(text, pollster)
}

func hashID(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:12])
}
