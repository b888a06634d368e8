// Package envelope wraps compact JSON documents in base64 for transport.
package envelope

import (
	"encoding/base64"
	"strings"

	"github.com/mcncl/jsonobj/internal/formatter"
	"github.com/mcncl/jsonobj/internal/models"
	"github.com/mcncl/jsonobj/internal/parser"
)

// ToBase64 returns the standard base64 encoding of the compact form of c.
func ToBase64(c models.Container) string {
	return base64.StdEncoding.EncodeToString(ToBytes(c))
}

// ToBytes returns the compact form of c.
func ToBytes(c models.Container) []byte {
	return formatter.NewFormatter(formatter.StyleCompact).AppendFormat(nil, c)
}

// FromBase64 decodes an envelope produced by ToBase64. Text that is not valid
// base64 is parsed directly as JSON instead, so callers may pass either form.
// Empty input yields nil without an error.
func FromBase64(s string) (models.Container, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return parser.Parse(s)
	}
	return parser.Parse(string(data))
}

// TryFromBase64 is FromBase64 that returns nil instead of an error.
func TryFromBase64(s string) models.Container {
	c, err := FromBase64(s)
	if err != nil {
		return nil
	}
	return c
}

// EncodeString base64-encodes an arbitrary string payload.
func EncodeString(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// DecodeString reverses EncodeString. Text that is not valid base64 is
// returned unchanged.
func DecodeString(s string) string {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	return string(data)
}
