package attachment

import (
	"math/rand/v2"
	"path"
	"strconv"
	"strings"
	"time"
)

// NewKey builds a collision-resistant storage key for an uploaded file:
// the current epoch millis, a random base36 suffix, and the original file
// extension (lowercased). The original name itself is never part of the key;
// it travels separately as display-only metadata.
func NewKey(originalName string) string {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	suffix := strconv.FormatInt(rand.Int64N(1<<48), 36)
	ext := strings.ToLower(path.Ext(originalName))
	return millis + "-" + suffix + ext
}

// KeyFromURL derives the storage key from a public URL: its final path
// segment. Returns "" when the URL has no usable segment.
func KeyFromURL(rawURL string) string {
	trimmed := rawURL
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if trimmed == "" {
		return ""
	}
	return trimmed[strings.LastIndexByte(trimmed, '/')+1:]
}
