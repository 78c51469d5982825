package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML so repeated renders of an
// unchanged widget are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCache is an in-memory TTL cache for rendered charts. A nil cache or
// a non-positive TTL disables memoization.
type ChartCache struct {
	ttl     time.Duration
	clock   func() time.Time
	mu      sync.RWMutex
	entries map[string]cachedRender
}

type cachedRender struct {
	html    string
	expires time.Time
}

// NewChartCache builds a cache with the provided TTL.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		clock:   time.Now,
		entries: make(map[string]cachedRender),
	}
}

// GetOrRender returns a cached entry or renders/stores a new one.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if html, ok := c.get(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.set(key, html)
	return html, nil
}

// Purge drops every cached entry.
func (c *ChartCache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]cachedRender)
	c.mu.Unlock()
}

func (c *ChartCache) get(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.clock().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return "", false
	}
	return entry.html, true
}

func (c *ChartCache) set(key, html string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedRender{
		html:    html,
		expires: c.clock().Add(c.ttl),
	}
	c.mu.Unlock()
}

// renderKey builds a deterministic cache key from the widget id, its metric
// selection and the label window.
func renderKey(widgetID string, selection MetricSelection, labels []string) string {
	var sb strings.Builder
	sb.WriteString(widgetID)
	sb.WriteByte('|')
	for _, k := range selection.Keys() {
		sb.WriteString(string(k))
		sb.WriteByte(',')
	}
	sb.WriteByte('|')
	for _, l := range labels {
		sb.WriteString(l)
		sb.WriteByte(',')
	}
	sum := sha1.Sum([]byte(sb.String()))
	return widgetID + ":" + hex.EncodeToString(sum[:])
}
