// Package view computes the derived message list the console renders: a
// pure, full recomputation over one domain's raw records given the bucket
// selector, an optional category filter and an optional name search.
package view

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rentkit/outreach-console/internal/domain"
)

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "all"

// Query selects one bucket and optionally narrows it. Category is matched
// by exact, case-sensitive equality; Search is a trimmed, case-insensitive
// substring match on the content name.
type Query struct {
	Bucket   domain.MessageType
	Category string
	Search   string

	// SortByName orders the result by content name only, ignoring the
	// bucket's default order. Used by the broadcast picker; funnel buckets
	// keep their category-then-name order regardless.
	SortByName bool
}

// Apply filters and sorts messages for the query. The result is always a
// fresh, non-nil slice; the input is not modified.
func Apply(messages []domain.Message, q Query) []domain.Message {
	out := make([]domain.Message, 0, len(messages))

	search := strings.ToLower(strings.TrimSpace(q.Search))
	categoryActive := q.Category != "" && q.Category != CategoryAll

	for _, m := range messages {
		if m.MessageType != q.Bucket {
			continue
		}
		if categoryActive && m.ContextCategory != q.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.ContentName), search) {
			continue
		}
		out = append(out, m)
	}

	c := newCollator()

	switch {
	case q.SortByName && q.Bucket.IsBroadcast():
		slices.SortStableFunc(out, func(a, b domain.Message) int {
			return c.CompareString(a.ContentName, b.ContentName)
		})
	case q.Bucket.IsBroadcast():
		slices.SortStableFunc(out, compareBySentDesc)
	default:
		slices.SortStableFunc(out, func(a, b domain.Message) int {
			if v := c.CompareString(a.ContextCategory, b.ContextCategory); v != 0 {
				return v
			}
			return c.CompareString(a.ContentName, b.ContentName)
		})
	}

	return out
}

// compareBySentDesc orders broadcast buckets newest-sent first, with unsent
// records ("PENDING" in the console) floating to the top. Two unsent records
// compare equal so the stable sort preserves their relative order.
func compareBySentDesc(a, b domain.Message) int {
	switch {
	case a.SentDate == nil && b.SentDate == nil:
		return 0
	case a.SentDate == nil:
		return -1
	case b.SentDate == nil:
		return 1
	}

	if a.SentDate.After(*b.SentDate) {
		return -1
	}
	if a.SentDate.Before(*b.SentDate) {
		return 1
	}
	return 0
}

// Categories returns the deduplicated category names present in the bucket,
// sorted ascending. It deliberately ignores any active category filter or
// search text: it describes what is available, not what is shown.
func Categories(messages []domain.Message, bucket domain.MessageType) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)

	for _, m := range messages {
		if m.MessageType != bucket {
			continue
		}
		if _, ok := seen[m.ContextCategory]; ok {
			continue
		}
		seen[m.ContextCategory] = struct{}{}
		out = append(out, m.ContextCategory)
	}

	c := newCollator()
	slices.SortFunc(out, c.CompareString)

	return out
}

// Collators are not safe for concurrent use, so each recomputation builds
// its own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}
