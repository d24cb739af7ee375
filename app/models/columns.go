package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
)

// StringList is a JSON array column holding ordered public URLs.
// An empty list is stored as SQL NULL, never as "[]".
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface. It tolerates NULL, raw
// bytes, string values and double-encoded JSON; malformed content
// degrades to an empty list instead of failing the row read.
func (l *StringList) Scan(value interface{}) error {
	raw, err := columnBytes(value)
	if err != nil {
		return err
	}
	if raw == nil {
		*l = nil
		return nil
	}

	var urls []string
	if err := json.Unmarshal(raw, &urls); err != nil {
		// Legacy rows sometimes hold a JSON string containing the array.
		var nested string
		if json.Unmarshal(raw, &nested) == nil {
			if json.Unmarshal([]byte(nested), &urls) == nil {
				*l = urls
				return nil
			}
		}
		*l = nil
		return nil
	}
	*l = urls
	return nil
}

// Document is one downloadable attachment on a product.
type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DocumentList is a JSON array column of {name, url} pairs. Legacy rows
// stored bare URL strings; those are normalized on read, using the last
// path segment as the display name.
type DocumentList []Document

// Value implements the driver.Valuer interface
func (l DocumentList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]Document(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *DocumentList) Scan(value interface{}) error {
	raw, err := columnBytes(value)
	if err != nil {
		return err
	}
	if raw == nil {
		*l = nil
		return nil
	}

	docs, ok := decodeDocuments(raw)
	if !ok {
		// Double-encoded legacy shape
		var nested string
		if json.Unmarshal(raw, &nested) == nil {
			if d, ok := decodeDocuments([]byte(nested)); ok {
				*l = d
				return nil
			}
		}
		*l = nil
		return nil
	}
	*l = docs
	return nil
}

func decodeDocuments(raw []byte) ([]Document, bool) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}

	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		var doc Document
		if err := json.Unmarshal(entry, &doc); err == nil && doc.URL != "" {
			if doc.Name == "" {
				doc.Name = NameFromURL(doc.URL)
			}
			docs = append(docs, doc)
			continue
		}
		var url string
		if err := json.Unmarshal(entry, &url); err == nil && url != "" {
			docs = append(docs, Document{Name: NameFromURL(url), URL: url})
		}
	}
	return docs, true
}

// NameFromURL returns the last path segment of a URL, for documents
// persisted without an original filename.
func NameFromURL(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}

func columnBytes(value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			return nil, nil
		}
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return []byte(v), nil
	default:
		return nil, errors.New("invalid scan source")
	}
}
