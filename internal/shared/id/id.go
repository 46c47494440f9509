// Package id generates the identifiers of the autofill service.
//
// Identifiers are ULIDs, so they sort by creation time, with a short type
// prefix that keeps logs readable: req_01H..., fill_01H....
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestID identifies an API request
type RequestID string

// ScriptID identifies a dispatched fill script
type ScriptID string

const (
	RequestPrefix = "req"
	ScriptPrefix  = "fill"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand.
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy
// source, for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewScriptID generates a new fill-script ID
func NewScriptID() ScriptID {
	return ScriptID(Default().GenerateWithPrefix(ScriptPrefix))
}

func (id RequestID) String() string { return string(id) }
func (id ScriptID) String() string  { return string(id) }

// IsValid checks if an ID string is a valid ULID, with or without prefix
func IsValid(id string) bool {
	_, _, err := Split(id)
	return err == nil
}

// Parse parses a bare ULID string
func Parse(id string) (ulid.ULID, error) {
	return ulid.Parse(id)
}

// Split separates a prefixed ID into its prefix and ULID. A bare ULID has
// an empty prefix.
func Split(id string) (string, ulid.ULID, error) {
	prefix, raw, found := strings.Cut(id, "_")
	if !found {
		prefix, raw = "", id
	}
	u, err := ulid.Parse(raw)
	if err != nil {
		return "", ulid.ULID{}, fmt.Errorf("invalid id %q: %w", id, err)
	}
	return prefix, u, nil
}

// Timestamp extracts the creation time of an ID
func Timestamp(id string) (time.Time, error) {
	_, parsed, err := Split(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
