// Package cache stores successful conversion results for a short time so
// that repeated submissions of the same booking are answered without a
// round trip to the conversion engine.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"strconv"
	"strings"

	"github.com/sacsbrainz/betconverter/internal/models"
)

// ErrMiss is returned by Get when no live entry exists.
var ErrMiss = errors.New("cache miss")

// ResultCache stores conversion results by key.
type ResultCache interface {
	Get(ctx context.Context, key string) (models.ConversionResult, error)
	Set(ctx context.Context, key string, res models.ConversionResult) error
}

const (
	keyPrefix = "conv:"
	elements  = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Keyer derives cache keys from conversion requests: a SHA-256 digest of
// the identifying fields, base62 encoded and truncated.
type Keyer struct {
	numChars int
}

// NewKeyer returns a keyer producing keys of at most numChars digest
// characters. A base62 uint64 never needs more than 11.
func NewKeyer(numChars int) *Keyer {
	if numChars <= 0 || numChars > 11 {
		numChars = 11
	}
	return &Keyer{numChars: numChars}
}

// Key returns the cache key of r. Disabled flags are ignored: they do not
// change what the engine is asked to do.
func (k *Keyer) Key(r models.ConversionRequest) string {
	fields := []string{
		r.Code,
		strings.ToLower(r.Input.Name), strings.ToLower(r.Input.Country),
		strings.ToLower(r.Output.Name), strings.ToLower(r.Output.Country),
		strconv.FormatBool(r.Remove),
	}
	sum := sha256.Sum256([]byte(strings.Join(fields, "\x00")))

	enc := toBase62(binary.BigEndian.Uint64(sum[:8]))
	if len(enc) > k.numChars {
		enc = enc[:k.numChars]
	}
	return keyPrefix + enc
}

func toBase62(value uint64) string {
	if value == 0 {
		return "0"
	}

	var sb []byte
	for value > 0 {
		sb = append(sb, elements[value%62])
		value /= 62
	}

	for i, j := 0, len(sb)-1; i < j; i, j = i+1, j-1 {
		sb[i], sb[j] = sb[j], sb[i]
	}
	return string(sb)
}
