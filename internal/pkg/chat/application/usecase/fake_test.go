package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	chat "parley/internal/pkg/chat/application/domain"
)

// fakeRepo is an in-memory implementation of the repository ports, honoring
// the same contracts as the pgx adapters: one membership per pair, a single
// "General" conversation, messages listed ascending by creation time.
type fakeRepo struct {
	mu      sync.Mutex
	seq     int
	clock   time.Time
	users   map[string]chat.User
	convs   map[string]*chat.Conversation
	members map[string][]chat.Membership
	msgs    []chat.Message
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clock:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		users:   make(map[string]chat.User),
		convs:   make(map[string]*chat.Conversation),
		members: make(map[string][]chat.Membership),
	}
}

func (f *fakeRepo) addUser(id, name, email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id] = chat.User{ID: id, Name: name, Email: email}
}

func (f *fakeRepo) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRepo) profileLocked(userID string) *chat.Profile {
	if u, ok := f.users[userID]; ok {
		p := u.Public()
		return &p
	}
	return nil
}

func (f *fakeRepo) CreateConversation(_ context.Context, ownerID, title string) (*chat.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.tick()
	conv := &chat.Conversation{
		ID:        f.nextID("conv"),
		Title:     title,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.convs[conv.ID] = conv

	m := chat.Membership{
		ID:             f.nextID("mem"),
		ConversationID: conv.ID,
		UserID:         ownerID,
		JoinedAt:       now,
		User:           f.profileLocked(ownerID),
	}
	f.members[conv.ID] = []chat.Membership{m}

	out := *conv
	out.Members = []chat.Membership{m}
	return &out, nil
}

func (f *fakeRepo) ListConversations(_ context.Context, userID string) ([]chat.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []chat.Conversation
	for id, conv := range f.convs {
		joined := false
		for _, m := range f.members[id] {
			if m.UserID == userID {
				joined = true
				break
			}
		}
		if !joined {
			continue
		}
		c := *conv
		c.Members = append([]chat.Membership(nil), f.members[id]...)
		for _, msg := range f.msgs {
			if msg.ConversationID == id {
				c.MessageCount++
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeRepo) IsMember(_ context.Context, conversationID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members[conversationID] {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) AddMember(_ context.Context, conversationID, userID string) (*chat.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.convs[conversationID]; !ok {
		return nil, chat.ErrNotFound
	}
	if _, ok := f.users[userID]; !ok {
		return nil, chat.ErrNotFound
	}
	for _, m := range f.members[conversationID] {
		if m.UserID == userID {
			return nil, chat.ErrAlreadyMember
		}
	}

	m := chat.Membership{
		ID:             f.nextID("mem"),
		ConversationID: conversationID,
		UserID:         userID,
		JoinedAt:       f.tick(),
		User:           f.profileLocked(userID),
	}
	f.members[conversationID] = append(f.members[conversationID], m)
	return &m, nil
}

func (f *fakeRepo) ListMembers(_ context.Context, conversationID string) ([]chat.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]chat.Membership(nil), f.members[conversationID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out, nil
}

func (f *fakeRepo) FindOrCreateGeneral(_ context.Context, ownerID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, conv := range f.convs {
		if conv.Title == chat.GeneralTitle {
			return id, nil
		}
	}

	now := f.tick()
	conv := &chat.Conversation{
		ID:        f.nextID("conv"),
		Title:     chat.GeneralTitle,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.convs[conv.ID] = conv
	f.members[conv.ID] = []chat.Membership{{
		ID:             f.nextID("mem"),
		ConversationID: conv.ID,
		UserID:         ownerID,
		JoinedAt:       now,
		User:           f.profileLocked(ownerID),
	}}
	return conv.ID, nil
}

func (f *fakeRepo) SaveMessage(_ context.Context, m chat.Message) (*chat.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if conv, ok := f.convs[m.ConversationID]; ok {
		conv.UpdatedAt = f.tick()
	} else {
		return nil, chat.ErrNotFound
	}

	m.ID = f.nextID("msg")
	m.CreatedAt = f.clock
	if m.UserID != nil {
		if u, ok := f.users[*m.UserID]; ok {
			m.User = &chat.Author{Name: u.Name, Avatar: u.Avatar}
		}
	}
	f.msgs = append(f.msgs, m)
	out := m
	return &out, nil
}

func (f *fakeRepo) ListMessages(_ context.Context, conversationID string) ([]chat.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []chat.Message
	for _, m := range f.msgs {
		if conversationID == "" || m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*chat.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		out := u
		return &out, nil
	}
	return nil, chat.ErrNotFound
}

func (f *fakeRepo) Search(_ context.Context, query, excludeID string, limit int) ([]chat.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := strings.ToLower(query)
	var out []chat.Profile
	for _, u := range f.users {
		if u.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u.Public())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
