package utils

import (
	"context"
	"strings"
	"time"
)

var sleep = time.Sleep

// WaitFor blocks for d or until ctx is done, whichever comes first.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := make(chan struct{})
	go func() {
		defer close(timer)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer:
		return nil
	}
}

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s, cut := TruncateRunes(strings.TrimSpace(s), limit)
	if cut {
		return s + "..."
	}
	return s
}

// TruncateRunes cuts s to at most limit runes and reports whether anything was removed.
func TruncateRunes(s string, limit int) (string, bool) {
	if limit < 0 {
		limit = 0
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i], true
		}
		count++
	}
	return s, false
}
