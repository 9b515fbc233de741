// Package cache stores final agent replies keyed by a fingerprint of the
// normalized query, so repeated questions are answered without a model call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// Entry is one cached reply. Query keeps the surface form of the first
// query that produced the entry; later upserts refresh everything else.
type Entry struct {
	Fingerprint string    `json:"fingerprint"`
	Query       string    `json:"query"`
	Reply       string    `json:"reply"`
	ToolUsed    string    `json:"tool_used,omitempty"`
	Data        any       `json:"data,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// QueryCache is the contract shared by the in-memory and Redis backends.
// Get reports a miss with ok=false; expired entries are never returned.
// Set is an upsert per fingerprint. InvalidateAll wipes every entry and
// returns how many were removed.
type QueryCache interface {
	Get(ctx context.Context, query string) (*Entry, bool, error)
	Set(ctx context.Context, query, reply, toolUsed string, data any) error
	InvalidateAll(ctx context.Context) (int, error)
}

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize lowercases, strips punctuation and collapses whitespace so
// that surface variants of the same question share a fingerprint.
func Normalize(query string) string {
	s := strings.ToLower(query)
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Fingerprint returns the hex SHA-256 of the normalized query.
func Fingerprint(query string) string {
	sum := sha256.Sum256([]byte(Normalize(query)))
	return hex.EncodeToString(sum[:])
}
