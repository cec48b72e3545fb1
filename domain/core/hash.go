package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// DatasetHash fingerprints the loaded dataset's content. Two processes
// serving the same file report the same fingerprint even though their
// snapshot IDs differ.
type DatasetHash Hash

// NewDatasetHash hashes a canonical byte serialization of the dataset.
func NewDatasetHash(data []byte) DatasetHash {
	return DatasetHash(NewHash(data))
}

func (h DatasetHash) String() string { return Hash(h).String() }

// Short returns a log-friendly prefix of the fingerprint.
func (h DatasetHash) Short() string {
	s := Hash(h).String()
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
