package tracker

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/proj-coursebook/change-tracker/pkg/core"
)

// Supported fingerprint algorithms.
const (
	AlgorithmMD5  = "md5"
	AlgorithmXXH3 = "xxh3"
)

// Hasher turns file content into a core.Fingerprint.
// The zero value hashes with MD5.
type Hasher struct {
	name string
	sum  func([]byte) string
}

var (
	// MD5 produces 32-character MD5 hex digests.
	MD5 = Hasher{name: AlgorithmMD5, sum: func(b []byte) string {
		s := md5.Sum(b)
		return hex.EncodeToString(s[:])
	}}
	// XXH3 produces 32-character XXH3-128 hex digests.
	XXH3 = Hasher{name: AlgorithmXXH3, sum: func(b []byte) string {
		s := xxh3.Hash128(b).Bytes()
		return hex.EncodeToString(s[:])
	}}
)

// NewHasher returns the hasher registered under name. An empty name selects MD5.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "", AlgorithmMD5:
		return MD5, nil
	case AlgorithmXXH3:
		return XXH3, nil
	default:
		return Hasher{}, fmt.Errorf("unknown fingerprint algorithm %q", name)
	}
}

// Name returns the algorithm name.
func (h Hasher) Name() string {
	if h.sum == nil {
		return MD5.name
	}
	return h.name
}

// Fingerprint digests content. Nil content is rejected with core.ErrInvalidInput;
// an empty slice is valid content.
func (h Hasher) Fingerprint(content []byte) (core.Fingerprint, error) {
	if content == nil {
		return "", fmt.Errorf("%w: content is nil", core.ErrInvalidInput)
	}
	if h.sum == nil {
		h = MD5
	}
	return core.Fingerprint(h.sum(content)), nil
}

// Fingerprint digests content with MD5.
func Fingerprint(content []byte) (core.Fingerprint, error) {
	return MD5.Fingerprint(content)
}
