// Package pagination implements opaque cursor pagination shared by the people
// listing and the research queue.
//
// A cursor encodes either a single sort key (a person id) or a composite
// (score, id) key. Tokens are base64 of a small JSON document; the encoding is
// an implementation detail and clients must treat tokens as opaque.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// IDKey is the sort key for plain id-ordered listings.
type IDKey struct {
	ID string `json:"id"`
}

// ScoredKey is the composite sort key for the ranked research queue.
// Ordering is descending by score with ascending id as the tiebreak.
type ScoredKey struct {
	Score float64 `json:"score"`
	ID    string  `json:"id"`
}

// After reports whether k sorts strictly after the cursor key in queue order:
// lower score, or equal score and greater id.
func (k ScoredKey) After(cursor ScoredKey) bool {
	if k.Score != cursor.Score {
		return k.Score < cursor.Score
	}
	return k.ID > cursor.ID
}

// EncodeID encodes a single-field person id cursor.
func EncodeID(id string) string {
	return encode(IDKey{ID: id})
}

// DecodeID decodes a single-field cursor back to the person id.
func DecodeID(token string) (string, error) {
	var key IDKey
	if err := decode(token, &key); err != nil {
		return "", err
	}
	if key.ID == "" {
		return "", fmt.Errorf("cursor has empty id")
	}
	return key.ID, nil
}

// EncodeScored encodes a composite (score, id) cursor.
func EncodeScored(score float64, id string) string {
	return encode(ScoredKey{Score: score, ID: id})
}

// DecodeScored decodes a composite cursor.
func DecodeScored(token string) (ScoredKey, error) {
	var key ScoredKey
	if err := decode(token, &key); err != nil {
		return ScoredKey{}, err
	}
	if key.ID == "" {
		return ScoredKey{}, fmt.Errorf("cursor has empty id")
	}
	return key, nil
}

func encode(key any) string {
	data, _ := json.Marshal(key)
	return base64.RawURLEncoding.EncodeToString(data)
}

func decode(token string, into any) error {
	if token == "" {
		return fmt.Errorf("empty cursor")
	}
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return fmt.Errorf("decode cursor: %w", err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("decode cursor: %w", err)
	}
	return nil
}
