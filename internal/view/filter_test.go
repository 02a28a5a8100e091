package view

import (
	"slices"
	"testing"
	"time"

	"github.com/rentkit/outreach-console/internal/domain"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func smsMessage(id int64, category, name string, mt domain.MessageType, sent *time.Time) domain.Message {
	return domain.Message{
		ID:              id,
		Channel:         mt.Channel(),
		ContextCategory: category,
		ContentName:     name,
		Content:         "body",
		MessageType:     mt,
		SentDate:        sent,
	}
}

func TestApply_BucketPartition(t *testing.T) {
	input := []domain.Message{
		smsMessage(1, "Welcome", "Intro", domain.TypeBroadcast, nil),
		smsMessage(2, "Welcome", "Drip 1", domain.TypeFunnelContent, nil),
		smsMessage(3, "Offers", "Spring Sale", domain.TypeBroadcast, ts("2024-03-01T00:00:00Z")),
		smsMessage(4, "Offers", "Drip 2", domain.TypeFunnelContent, nil),
	}

	got := Apply(input, Query{Bucket: domain.TypeBroadcast})

	if len(got) != 2 {
		t.Fatalf("expected 2 broadcast messages, got %d", len(got))
	}
	for _, m := range got {
		if m.MessageType != domain.TypeBroadcast {
			t.Errorf("message %d has type %q, want %q", m.ID, m.MessageType, domain.TypeBroadcast)
		}
	}

	// Every matching input record appears exactly once.
	ids := []int64{got[0].ID, got[1].ID}
	slices.Sort(ids)
	if ids[0] != 1 || ids[1] != 3 {
		t.Errorf("expected ids [1 3], got %v", ids)
	}
}

func TestApply_BroadcastSortUnsentFirstThenNewest(t *testing.T) {
	input := []domain.Message{
		smsMessage(1, "A", "old", domain.TypeBroadcast, ts("2024-01-01T00:00:00Z")),
		smsMessage(2, "A", "unsent-first", domain.TypeBroadcast, nil),
		smsMessage(3, "A", "newest", domain.TypeBroadcast, ts("2024-06-01T00:00:00Z")),
		smsMessage(4, "A", "unsent-second", domain.TypeBroadcast, nil),
		smsMessage(5, "A", "middle", domain.TypeBroadcast, ts("2024-03-01T00:00:00Z")),
	}

	got := Apply(input, Query{Bucket: domain.TypeBroadcast})

	wantOrder := []int64{2, 4, 3, 5, 1}
	for i, m := range got {
		if m.ID != wantOrder[i] {
			t.Fatalf("position %d: expected id %d, got %d (order %v)", i, wantOrder[i], m.ID, idsOf(got))
		}
	}

	// Adjacent-pair invariant: a is unsent, or both sent and a >= b.
	for i := 0; i+1 < len(got); i++ {
		a, b := got[i], got[i+1]
		if a.SentDate == nil {
			continue
		}
		if b.SentDate == nil {
			t.Fatalf("sent message %d ordered before unsent %d", a.ID, b.ID)
		}
		if a.SentDate.Before(*b.SentDate) {
			t.Fatalf("message %d sent %v ordered before %d sent %v", a.ID, a.SentDate, b.ID, b.SentDate)
		}
	}
}

func TestApply_BroadcastSortIsStableForUnsent(t *testing.T) {
	input := []domain.Message{
		smsMessage(10, "A", "first", domain.TypeBroadcast, nil),
		smsMessage(11, "A", "second", domain.TypeBroadcast, nil),
		smsMessage(12, "A", "third", domain.TypeBroadcast, nil),
	}

	got := Apply(input, Query{Bucket: domain.TypeBroadcast})

	want := []int64{10, 11, 12}
	if !slices.Equal(idsOf(got), want) {
		t.Fatalf("expected stable order %v, got %v", want, idsOf(got))
	}
}

func TestApply_FunnelSortByCategoryThenName(t *testing.T) {
	input := []domain.Message{
		smsMessage(1, "Onboarding", "Step 2", domain.TypeFunnelContent, nil),
		smsMessage(2, "Checkout", "Reminder", domain.TypeFunnelContent, nil),
		smsMessage(3, "Onboarding", "Step 1", domain.TypeFunnelContent, nil),
		smsMessage(4, "Checkout", "Abandoned", domain.TypeFunnelContent, nil),
	}

	got := Apply(input, Query{Bucket: domain.TypeFunnelContent})

	want := []int64{4, 2, 3, 1}
	if !slices.Equal(idsOf(got), want) {
		t.Fatalf("expected order %v, got %v", want, idsOf(got))
	}
}

func TestApply_CategoryFilterExactMatch(t *testing.T) {
	input := []domain.Message{
		smsMessage(1, "Welcome", "a", domain.TypeFunnelContent, nil),
		smsMessage(2, "welcome", "b", domain.TypeFunnelContent, nil),
		smsMessage(3, "Offers", "c", domain.TypeFunnelContent, nil),
	}

	got := Apply(input, Query{Bucket: domain.TypeFunnelContent, Category: "Welcome"})

	// Case-sensitive equality: "welcome" must not match.
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only id 1, got %v", idsOf(got))
	}

	// Sentinel "all" disables the filter.
	got = Apply(input, Query{Bucket: domain.TypeFunnelContent, Category: CategoryAll})
	if len(got) != 3 {
		t.Fatalf("expected 3 messages with category=all, got %d", len(got))
	}
}

func TestApply_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	input := []domain.Message{
		smsMessage(1, "A", "Welcome Email", domain.TypeBroadcast, nil),
		smsMessage(2, "A", "welcome back", domain.TypeBroadcast, nil),
		smsMessage(3, "A", "Goodbye", domain.TypeBroadcast, nil),
	}

	got := Apply(input, Query{Bucket: domain.TypeBroadcast, Search: "WELCOME"})

	if len(got) != 2 {
		t.Fatalf("expected 2 matches for WELCOME, got %v", idsOf(got))
	}

	// Leading/trailing whitespace in the query is trimmed.
	got = Apply(input, Query{Bucket: domain.TypeBroadcast, Search: "  good  "})
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("expected only id 3 for padded search, got %v", idsOf(got))
	}

	// Blank search is a no-op.
	got = Apply(input, Query{Bucket: domain.TypeBroadcast, Search: "   "})
	if len(got) != 3 {
		t.Fatalf("expected all 3 for blank search, got %d", len(got))
	}
}

func TestApply_EmptyInputReturnsEmptyNonNil(t *testing.T) {
	got := Apply(nil, Query{Bucket: domain.TypeBroadcast})
	if got == nil {
		t.Fatalf("expected non-nil slice")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %d", len(got))
	}
}

func TestApply_SortByNameForBroadcastPicker(t *testing.T) {
	input := []domain.Message{
		smsMessage(1, "A", "Zeta", domain.TypeBroadcast, ts("2024-06-01T00:00:00Z")),
		smsMessage(2, "A", "alpha", domain.TypeBroadcast, nil),
		smsMessage(3, "A", "Mid", domain.TypeBroadcast, nil),
	}

	got := Apply(input, Query{Bucket: domain.TypeBroadcast, SortByName: true})

	want := []int64{2, 3, 1}
	if !slices.Equal(idsOf(got), want) {
		t.Fatalf("expected name order %v, got %v", want, idsOf(got))
	}
}

func TestApply_SortByNameIgnoredForFunnelBuckets(t *testing.T) {
	input := []domain.Message{
		smsMessage(1, "Onboarding", "Alpha", domain.TypeFunnelContent, nil),
		smsMessage(2, "Checkout", "Zeta", domain.TypeFunnelContent, nil),
	}

	got := Apply(input, Query{Bucket: domain.TypeFunnelContent, SortByName: true})

	// Funnel buckets keep category-then-name order; the picker override
	// only applies to broadcasts.
	want := []int64{2, 1}
	if !slices.Equal(idsOf(got), want) {
		t.Fatalf("expected category order %v, got %v", want, idsOf(got))
	}
}

func TestCategories_DedupedSortedAndFilterIndependent(t *testing.T) {
	input := []domain.Message{
		smsMessage(1, "Onboarding", "a", domain.TypeFunnelContent, nil),
		smsMessage(2, "Checkout", "b", domain.TypeFunnelContent, nil),
		smsMessage(3, "Onboarding", "c", domain.TypeFunnelContent, nil),
		smsMessage(4, "Broadcast Only", "d", domain.TypeBroadcast, nil),
	}

	got := Categories(input, domain.TypeFunnelContent)

	want := []string{"Checkout", "Onboarding"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// The registry reads pre-filter records: narrowing the view does not
	// change what it would report, because it never sees the query at all.
	filtered := Apply(input, Query{Bucket: domain.TypeFunnelContent, Category: "Checkout"})
	if len(filtered) != 1 {
		t.Fatalf("expected 1 filtered message, got %d", len(filtered))
	}
	again := Categories(input, domain.TypeFunnelContent)
	if !slices.Equal(again, want) {
		t.Fatalf("expected %v after filtering, got %v", want, again)
	}
}

func TestCategories_EmptyInput(t *testing.T) {
	got := Categories(nil, domain.TypeEmailBroadcast)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func idsOf(messages []domain.Message) []int64 {
	ids := make([]int64, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
	}
	return ids
}
