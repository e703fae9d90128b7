package logger

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const DefaultBufferLines = 1000

// RingBuffer keeps the most recent log lines up to a fixed capacity.
type RingBuffer struct {
	mu       sync.RWMutex
	entries  []string
	capacity int
	start    int
	count    int
}

func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = DefaultBufferLines
	}
	return &RingBuffer{capacity: capacity, entries: make([]string, capacity)}
}

func (b *RingBuffer) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.count < b.capacity {
		b.entries[(b.start+b.count)%b.capacity] = line
		b.count++
		return
	}
	b.entries[b.start] = line
	b.start = (b.start + 1) % b.capacity
}

// Last returns up to n of the newest lines, oldest first. n <= 0 returns all.
func (b *RingBuffer) Last(n int) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n <= 0 || n > b.count {
		n = b.count
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = b.entries[(b.start+b.count-n+i)%b.capacity]
	}
	return out
}

func (b *RingBuffer) Capacity() int {
	return b.capacity
}

func (b *RingBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// bufferingHandler tees records to next and appends a one-line rendering,
// including attributes bound with WithAttrs, to the buffer.
type bufferingHandler struct {
	next   slog.Handler
	buffer *RingBuffer
	prefix string
	bound  []string
}

func NewBufferingHandler(next slog.Handler, buffer *RingBuffer) slog.Handler {
	return &bufferingHandler{next: next, buffer: buffer}
}

func (h *bufferingHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.next.Enabled(ctx, lvl)
}

func (h *bufferingHandler) Handle(ctx context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	var b strings.Builder
	b.WriteString(ts.UTC().Format(time.RFC3339))
	b.WriteString(" ")
	b.WriteString(r.Level.String())
	b.WriteString(" ")
	b.WriteString(r.Message)
	for _, attr := range h.bound {
		b.WriteString(" ")
		b.WriteString(attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(" ")
		b.WriteString(h.render(a))
		return true
	})
	h.buffer.Append(b.String())
	return h.next.Handle(ctx, r)
}

func (h *bufferingHandler) render(a slog.Attr) string {
	return h.prefix + a.Key + "=" + a.Value.Resolve().String()
}

func (h *bufferingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := append([]string(nil), h.bound...)
	for _, a := range attrs {
		bound = append(bound, h.render(a))
	}
	return &bufferingHandler{next: h.next.WithAttrs(attrs), buffer: h.buffer, prefix: h.prefix, bound: bound}
}

func (h *bufferingHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &bufferingHandler{next: h.next.WithGroup(name), buffer: h.buffer, prefix: h.prefix + name + ".", bound: h.bound}
}
