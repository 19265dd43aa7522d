// Package bot adapts the two bot framework APIs the plugin runs under to a
// single Client.
//
// The Karin dialect resolves bots through a global registry and returns typed
// info objects. The legacy dialect hands out "pick" accessors and wants
// numeric ids. A Client is chosen once at startup and injected into callers.
//
// Lookups never fail: they return a Result carrying a fallback value and the
// error that caused it, so presence pushes keep flowing when a name or avatar
// is unavailable.
package bot

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

type Dialect string

const (
	DialectKarin  Dialect = "karin"
	DialectLegacy Dialect = "legacy"
)

var ErrUnknownBot = errors.New("unknown bot")

func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case DialectKarin:
		return DialectKarin, nil
	case DialectLegacy:
		return DialectLegacy, nil
	}
	return "", fmt.Errorf("unknown dialect %q", s)
}

// Result is a best-effort value. Fallback is set when Value is a substitute
// for what was asked, and Err then holds the reason.
type Result[T any] struct {
	Value    T
	Fallback bool
	Err      error
}

func resultOf[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func fallbackOf[T any](v T, err error) Result[T] {
	return Result[T]{Value: v, Fallback: true, Err: err}
}

// Image is an inline image reference. Karin hosts take Ref ("base64://..."),
// legacy hosts take the raw bytes in Data.
type Image struct {
	Ref  string
	Data []byte
}

func (img *Image) File() any {
	if img.Ref != "" {
		return img.Ref
	}
	return img.Data
}

// Bytes returns the image content whichever form it is in.
func (img *Image) Bytes() ([]byte, error) {
	if img.Ref == "" {
		return img.Data, nil
	}
	encoded, found := strings.CutPrefix(img.Ref, base64Prefix)
	if !found {
		return nil, fmt.Errorf("unsupported image reference %q", img.Ref)
	}
	return base64.StdEncoding.DecodeString(encoded)
}

const base64Prefix = "base64://"

type Client interface {
	Dialect() Dialect
	// UserName resolves a display name, falling back to uid.
	UserName(ctx context.Context, botID, uid, gid string) Result[string]
	// UserAvatar resolves an avatar url, falling back to "".
	UserAvatar(ctx context.Context, botID, uid, gid string) Result[string]
	// GroupMemberList lists member ids, falling back to an empty list.
	GroupMemberList(ctx context.Context, botID, gid string) Result[[]string]
	// AtTargetID picks the mentioned user, or id when nobody is mentioned.
	AtTargetID(at []string, id string) string
	SendGroupMessage(ctx context.Context, botID, gid string, msg Message) (SendResult, error)
	// Image wraps raw image bytes for a message segment.
	Image(data []byte) *Image
}
