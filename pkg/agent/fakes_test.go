package agent

import (
	"context"
	"sync"
	"time"
)

type completerCall struct {
	system string
	user   string
}

// scriptedCompleter answers by system prompt so one fake can stand in for
// both the extraction and the advisory model.
type scriptedCompleter struct {
	mu         sync.Mutex
	extract    string
	extractErr error
	advise     string
	adviseErr  error
	calls      []completerCall
}

func (c *scriptedCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	c.mu.Lock()
	c.calls = append(c.calls, completerCall{system: system, user: user})
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if system == AdvisorSystemPrompt {
		return c.advise, c.adviseErr
	}
	return c.extract, c.extractErr
}

func (c *scriptedCompleter) callsFor(system string) []completerCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []completerCall
	for _, call := range c.calls {
		if call.system == system {
			out = append(out, call)
		}
	}
	return out
}

type logEntry struct {
	level   string
	message string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, message: message})
}

func (l *recordingLogger) Debug(_, message string, _ map[string]interface{}) {
	l.record("debug", message)
}
func (l *recordingLogger) Info(_, message string, _ map[string]interface{}) { l.record("info", message) }
func (l *recordingLogger) Warn(_, message string, _ map[string]interface{}) { l.record("warn", message) }

func (l *recordingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

// 2024-03-15 20:00 UTC is already 2024-03-16 in Asia/Kolkata.
var fixedNow = time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)

const fixedToday = "2024-03-16"

func fixedNormalizer() *Normalizer {
	return NewNormalizer(DefaultTimezone, WithClock(func() time.Time { return fixedNow }))
}

func uintPtr(v uint) *uint { return &v }
