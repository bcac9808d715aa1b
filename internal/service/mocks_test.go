package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"rental-hub/internal/domain"
	"rental-hub/internal/repository"
)

// memDB simula el store relacional, incluida la restricción única de
// conversaciones y la transacción de Append.
type memDB struct {
	mu            sync.Mutex
	users         map[string]domain.User
	listings      map[string]domain.Listing
	comments      []domain.Comment
	conversations map[int64]domain.Conversation
	convByKey     map[string]int64
	messages      []domain.Message
	nextConvID    int64
	nextMsgID     int64
	inserts       int

	failWith   error
	staleReads bool
}

func newMemDB() *memDB {
	return &memDB{
		users:         make(map[string]domain.User),
		listings:      make(map[string]domain.Listing),
		conversations: make(map[int64]domain.Conversation),
		convByKey:     make(map[string]int64),
	}
}

func convKey(listingID, requesterID, ownerID string) string {
	return listingID + "|" + requesterID + "|" + ownerID
}

func (m *memDB) addUser(id, name string) domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := domain.User{ID: id, Name: name, Email: id + "@example.com"}
	m.users[id] = u
	return u
}

func (m *memDB) addListing(id, ownerID string) domain.Listing {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := domain.Listing{ID: id, OwnerID: ownerID, Title: "Listing " + id, Location: "Delhi"}
	m.listings[id] = l
	return l
}

func (m *memDB) messageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func (m *memDB) conversationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conversations)
}

type memUsers struct{ db *memDB }

func (r memUsers) Create(_ context.Context, user domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWith != nil {
		return r.db.failWith
	}
	for _, u := range r.db.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.db.users[user.ID] = user
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWith != nil {
		return domain.User{}, r.db.failWith
	}
	u, ok := r.db.users[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWith != nil {
		return domain.User{}, r.db.failWith
	}
	for _, u := range r.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (r memUsers) UpdateProfile(_ context.Context, id string, p domain.UserProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Name, u.Location, u.Occupation = p.Name, p.Location, p.Occupation
	u.PhoneNumber, u.Bio, u.ProfileURL = p.PhoneNumber, p.Bio, p.ProfileURL
	r.db.users[id] = u
	return nil
}

type memListings struct{ db *memDB }

func (r memListings) Create(_ context.Context, listing domain.Listing) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWith != nil {
		return r.db.failWith
	}
	r.db.listings[listing.ID] = listing
	return nil
}

func (r memListings) List(_ context.Context) ([]domain.Listing, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	out := make([]domain.Listing, 0, len(r.db.listings))
	for _, l := range r.db.listings {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memListings) GetByID(_ context.Context, id string) (domain.Listing, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWith != nil {
		return domain.Listing{}, r.db.failWith
	}
	l, ok := r.db.listings[id]
	if !ok {
		return domain.Listing{}, repository.ErrNotFound
	}
	return l, nil
}

type memComments struct{ db *memDB }

func (r memComments) Create(_ context.Context, c domain.Comment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.listings[c.ListingID]; !ok {
		return repository.ErrMissingReference
	}
	r.db.comments = append(r.db.comments, c)
	return nil
}

func (r memComments) ListByListingID(_ context.Context, listingID string) ([]domain.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Comment
	for _, c := range r.db.comments {
		if c.ListingID == listingID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memConversations struct{ db *memDB }

func (r memConversations) GetByID(_ context.Context, id int64) (domain.Conversation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWith != nil {
		return domain.Conversation{}, r.db.failWith
	}
	c, ok := r.db.conversations[id]
	if !ok {
		return domain.Conversation{}, repository.ErrNotFound
	}
	return c, nil
}

func (r memConversations) GetByKey(_ context.Context, listingID, requesterID, ownerID string) (domain.Conversation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWith != nil {
		return domain.Conversation{}, r.db.failWith
	}
	// staleReads fuerza a todos los llamadores por el camino de CreateOrGet.
	if r.db.staleReads {
		return domain.Conversation{}, repository.ErrNotFound
	}
	id, ok := r.db.convByKey[convKey(listingID, requesterID, ownerID)]
	if !ok {
		return domain.Conversation{}, repository.ErrNotFound
	}
	return r.db.conversations[id], nil
}

func (r memConversations) CreateOrGet(_ context.Context, conv domain.Conversation) (domain.Conversation, bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWith != nil {
		return domain.Conversation{}, false, r.db.failWith
	}
	if _, ok := r.db.listings[conv.ListingID]; !ok {
		return domain.Conversation{}, false, repository.ErrMissingReference
	}
	key := convKey(conv.ListingID, conv.RequesterID, conv.OwnerID)
	if id, ok := r.db.convByKey[key]; ok {
		return r.db.conversations[id], false, nil
	}
	r.db.nextConvID++
	conv.ID = r.db.nextConvID
	r.db.conversations[conv.ID] = conv
	r.db.convByKey[key] = conv.ID
	return conv, true, nil
}

func (r memConversations) ListSummaries(_ context.Context, userID string) ([]domain.ConversationSummary, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	var out []domain.ConversationSummary
	for _, c := range r.db.conversations {
		if !c.HasParticipant(userID) {
			continue
		}
		counterpart := c.Counterpart(userID)
		s := domain.ConversationSummary{
			Conversation:    c,
			ListingTitle:    r.db.listings[c.ListingID].Title,
			CounterpartID:   counterpart,
			CounterpartName: r.db.users[counterpart].Name,
		}
		for i := len(r.db.messages) - 1; i >= 0; i-- {
			if msg := r.db.messages[i]; msg.ConversationID == c.ID {
				content, sentAt := msg.Content, msg.CreatedAt
				s.LastMessage, s.LastMessageSentAt = &content, &sentAt
				break
			}
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastMessageAt.Equal(out[j].LastMessageAt) {
			return out[i].LastMessageAt.After(out[j].LastMessageAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type memMessages struct{ db *memDB }

func (r memMessages) Append(_ context.Context, msg domain.Message) (domain.Message, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWith != nil {
		return domain.Message{}, r.db.failWith
	}
	conv, ok := r.db.conversations[msg.ConversationID]
	if !ok {
		return domain.Message{}, repository.ErrNotFound
	}
	if msg.CreatedAt.Before(conv.LastMessageAt) {
		msg.CreatedAt = conv.LastMessageAt
	}
	r.db.nextMsgID++
	msg.ID = r.db.nextMsgID
	r.db.messages = append(r.db.messages, msg)
	conv.LastMessageAt = msg.CreatedAt
	r.db.conversations[conv.ID] = conv
	r.db.inserts++
	return msg, nil
}

func (r memMessages) ListByConversationID(_ context.Context, conversationID int64) ([]domain.Message, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	var out []domain.Message
	for _, msg := range r.db.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	return out, nil
}

// pinnedListings devuelve siempre el mismo listing, aunque ya no exista en memDB.
type pinnedListings struct {
	memListings
	listing domain.Listing
}

func (r pinnedListings) GetByID(_ context.Context, _ string) (domain.Listing, error) {
	return r.listing, nil
}

var errStoreDown = errors.New("connection refused")
