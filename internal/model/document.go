package model

import "time"

// Document is one ingested operational document, already reduced to clean
// sentences. Sentence order is significant: it is document order within the
// context, then position within the document.
type Document struct {
	DocumentID  string    `json:"document_id"`
	Context     string    `json:"context"`
	Filename    string    `json:"filename"`
	DocType     string    `json:"doc_type"`
	IngestedAt  time.Time `json:"ingested_at"`
	ContentHash string    `json:"content_hash"`
	Sentences   []string  `json:"sentences"`
}

// FetchMeta contains HTTP metadata from fetching a remote document
type FetchMeta struct {
	StatusCode   int    `json:"status_code"`
	ContentType  string `json:"content_type,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
	ETag         string `json:"etag,omitempty"`
}
