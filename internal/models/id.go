package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// ISOMillis is the timestamp layout used across stored records and
// resource descriptions: ISO-8601 with milliseconds, UTC.
const ISOMillis = "2006-01-02T15:04:05.000Z"

// Timestamp returns the current time formatted with ISOMillis.
func Timestamp() string {
	return time.Now().UTC().Format(ISOMillis)
}

// HashedID derives a deterministic identifier from a record's content plus
// the current timestamp: hex SHA-256 over the sorted-key JSON of the
// document concatenated with the timestamp. Uniqueness is probabilistic,
// not enforced.
func HashedID(document map[string]interface{}) string {
	// encoding/json marshals map keys in sorted order.
	docBytes, _ := json.Marshal(document)

	h := sha256.New()
	h.Write(docBytes)
	h.Write([]byte(time.Now().UTC().Format(time.RFC3339Nano)))
	return hex.EncodeToString(h.Sum(nil))
}
