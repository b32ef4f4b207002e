// Package document is the serialized form of a user's ledger shared by every
// storage backend.
package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/carson-networks/finance-tracker/internal/ledger"
)

const Version = 1

type envelope struct {
	Version  int              `json:"version"`
	SavedAt  time.Time        `json:"savedAt"`
	Snapshot *ledger.Snapshot `json:"snapshot"`
}

// Encode serializes a snapshot.
func Encode(snapshot *ledger.Snapshot, savedAt time.Time) ([]byte, error) {
	data, err := json.Marshal(envelope{Version: Version, SavedAt: savedAt.UTC(), Snapshot: snapshot})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses data written by Encode. A document holding an empty
// snapshot decodes to nil.
func Decode(data []byte) (*ledger.Snapshot, error) {
	var doc envelope
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if doc.Version > Version {
		return nil, fmt.Errorf("decode snapshot: unsupported version %d", doc.Version)
	}
	if doc.Snapshot.IsEmpty() {
		return nil, nil
	}
	return doc.Snapshot, nil
}

// ObjectKey is the object name of a user's document under prefix.
func ObjectKey(prefix, userID string) string {
	prefix = strings.Trim(prefix, "/")
	name := userID + ".json"
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
