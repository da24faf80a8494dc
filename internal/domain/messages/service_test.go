package messages

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"pet-adoption-marketplace/internal/domain/apperr"
	"pet-adoption-marketplace/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	mu    sync.Mutex
	items []Message
	fail  error
}

func (r *testRepo) Create(ctx context.Context, m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.items = append(r.items, m)
	return nil
}

func (r *testRepo) Conversation(ctx context.Context, a, b string) ([]Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, 0)
	for _, m := range r.items {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) Counterparts(ctx context.Context, userID string) ([]Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	last := map[string]time.Time{}
	for _, m := range r.items {
		var other string
		switch userID {
		case m.SenderID:
			other = m.ReceiverID
		case m.ReceiverID:
			other = m.SenderID
		default:
			continue
		}
		if m.CreatedAt.After(last[other]) {
			last[other] = m.CreatedAt
		}
	}
	out := make([]Thread, 0, len(last))
	for id, t := range last {
		out = append(out, Thread{CounterpartID: id, LastMessageAt: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessageAt.After(out[j].LastMessageAt) })
	return out, nil
}

type staticProfiles map[string]users.Profile

func (p staticProfiles) Profiles(ctx context.Context, ids []string) (map[string]users.Profile, error) {
	out := map[string]users.Profile{}
	for _, id := range ids {
		if v, ok := p[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

type countingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *countingNotifier) Publish(a, b string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, ConversationKey(a, b))
}

// sameSecond fija el reloj para forzar empates de CreatedAt.
func newTestService(profiles ProfileLookup, notifier Notifier, sameSecond bool) (*Service, *testRepo) {
	repo := &testRepo{}
	svc := NewService(repo, profiles, notifier)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		if sameSecond {
			return base
		}
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc, repo
}

func TestSend_Validation(t *testing.T) {
	svc, repo := newTestService(nil, nil, false)
	ctx := context.Background()

	cases := []SendInput{
		{SenderID: "", ReceiverID: "b", Content: "hi"},
		{SenderID: "a", ReceiverID: "", Content: "hi"},
		{SenderID: "a", ReceiverID: "b", Content: "   "},
		{SenderID: "a", ReceiverID: "a", Content: "hi"},
	}
	for _, in := range cases {
		_, err := svc.Send(ctx, in)
		assert.ErrorIs(t, err, apperr.ErrValidation, "%+v", in)
	}
	assert.Empty(t, repo.items, "no row must be persisted on validation failure")
}

func TestSend_PublishesAfterPersist(t *testing.T) {
	n := &countingNotifier{}
	svc, repo := newTestService(nil, n, false)

	m, err := svc.Send(context.Background(), SendInput{SenderID: "a", ReceiverID: "b", Content: "hola"})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Len(t, repo.items, 1)
	assert.Equal(t, []string{"a|b"}, n.calls)

	repo.fail = errors.New("db down")
	_, err = svc.Send(context.Background(), SendInput{SenderID: "a", ReceiverID: "b", Content: "again"})
	assert.ErrorIs(t, err, apperr.ErrStore)
	assert.Len(t, n.calls, 1, "failed writes are not published")
}

func TestSend_KeepsContentAsSent(t *testing.T) {
	svc, repo := newTestService(nil, nil, false)

	m, err := svc.Send(context.Background(), SendInput{SenderID: " a ", ReceiverID: "b", Content: "  hola\n"})
	require.NoError(t, err)
	assert.Equal(t, "  hola\n", m.Content)
	assert.Equal(t, "a", m.SenderID)
	require.Len(t, repo.items, 1)
	assert.Equal(t, "  hola\n", repo.items[0].Content)
}

func TestConversation_SymmetricAndAscending(t *testing.T) {
	svc, _ := newTestService(nil, nil, false)
	ctx := context.Background()

	for _, in := range []SendInput{
		{SenderID: "a", ReceiverID: "b", Content: "1"},
		{SenderID: "b", ReceiverID: "a", Content: "2"},
		{SenderID: "a", ReceiverID: "c", Content: "other"},
		{SenderID: "a", ReceiverID: "b", Content: "3"},
	} {
		_, err := svc.Send(ctx, in)
		require.NoError(t, err)
	}

	ab, err := svc.Conversation(ctx, "a", "b")
	require.NoError(t, err)
	ba, err := svc.Conversation(ctx, "b", "a")
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
	require.Len(t, ab, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{ab[0].Content, ab[1].Content, ab[2].Content})
}

func TestConversation_SameTimestampKeepsInsertionOrder(t *testing.T) {
	svc, _ := newTestService(nil, nil, true)
	ctx := context.Background()

	_, err := svc.Send(ctx, SendInput{SenderID: "a", ReceiverID: "b", Content: "first"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, SendInput{SenderID: "b", ReceiverID: "a", Content: "second"})
	require.NoError(t, err)

	got, err := svc.Conversation(ctx, "a", "b")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "second", got[1].Content)
}

func TestConversation_EmptyIsNotError(t *testing.T) {
	svc, _ := newTestService(nil, nil, false)
	got, err := svc.Conversation(context.Background(), "x", "y")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestThreads_OnePerCounterpartWithProfiles(t *testing.T) {
	profiles := staticProfiles{
		"b": {ID: "b", Name: "Bea", ProfileImage: "b.png"},
	}
	svc, _ := newTestService(profiles, nil, false)
	ctx := context.Background()

	for _, in := range []SendInput{
		{SenderID: "a", ReceiverID: "b", Content: "1"},
		{SenderID: "b", ReceiverID: "a", Content: "2"},
		{SenderID: "a", ReceiverID: "b", Content: "3"},
		{SenderID: "ghost", ReceiverID: "a", Content: "boo"},
	} {
		_, err := svc.Send(ctx, in)
		require.NoError(t, err)
	}

	threads, err := svc.Threads(ctx, "a")
	require.NoError(t, err)
	require.Len(t, threads, 2)

	// ghost fue el último en escribir
	assert.Equal(t, "ghost", threads[0].CounterpartID)
	assert.Equal(t, "", threads[0].Name)
	assert.Equal(t, "b", threads[1].CounterpartID)
	assert.Equal(t, "Bea", threads[1].Name)
	assert.Equal(t, "b.png", threads[1].ProfileImage)

	none, err := svc.Threads(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}
