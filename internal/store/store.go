package store

import (
	"strings"
	"sync"
	"time"

	"github.com/Obiagu00/CampusConnectNG/internal/models"
)

// Store owns the authoritative in-memory collections: users, products,
// conversations and the current session user. All state is lost when the
// process exits; there is no persistence layer behind it.
//
// Every mutation happens under a single mutex so multi-record operations
// (e.g. seller-name propagation) are atomic; no partial update is ever
// observable. Readers get copies, never references into the collections.
type Store struct {
	mu            sync.RWMutex
	users         []models.User
	products      []models.Product
	conversations map[string]*models.Conversation
	convOrder     []string
	currentUserID int64 // 0 means no session user
	lastID        int64
}

// New creates an empty store. Construct once at application start.
func New() *Store {
	return &Store{
		conversations: make(map[string]*models.Conversation),
	}
}

// NextID returns a fresh unique integer id. Ids are unix-millisecond based
// and strictly increasing, so they double as insertion-order timestamps.
func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextIDLocked()
}

func (s *Store) nextIDLocked() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// --- Users ---

// AddUser appends a user to the collection. The caller is responsible for
// id assignment and email uniqueness checks.
func (s *Store) AddUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

// FindUserByEmail looks a user up by case-insensitive email match.
func (s *Store) FindUserByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}

// FindUserByID looks a user up by id.
func (s *Store) FindUserByID(id int64) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUserLocked(id)
}

func (s *Store) findUserLocked(id int64) (models.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// UpdateUserAndPropagate updates the user's name and university and rewrites
// the seller snapshot of every product that user owns, all under one lock so
// the propagation is a single logical operation.
func (s *Store) UpdateUserAndPropagate(id int64, name, universityName string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.users {
		if s.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.User{}, false
	}

	s.users[idx].Name = name
	s.users[idx].UniversityName = universityName

	for i := range s.products {
		if s.products[i].Seller.ID == id {
			s.products[i].Seller.Name = name
		}
	}
	return s.users[idx], true
}

// --- Session ---

// SetCurrentUser marks the given user as the session user.
func (s *Store) SetCurrentUser(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUserID = id
}

// ClearCurrentUser ends the session. Products and conversations are kept.
func (s *Store) ClearCurrentUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUserID = 0
}

// CurrentUser returns the session user, if any. Because the session holds an
// id rather than a snapshot, profile updates are visible here immediately.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUserID == 0 {
		return models.User{}, false
	}
	return s.findUserLocked(s.currentUserID)
}

// --- Products ---

// PrependProduct inserts a product at the head of the collection so the
// newest listing is always first.
func (s *Store) PrependProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]models.Product{p}, s.products...)
}

// Products returns a copy of the product collection in its stored order.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// FindProductByID looks a product up by id.
func (s *Store) FindProductByID(id int64) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// ProductsBySeller returns the products owned by the given seller, keeping
// the collection order.
func (s *Store) ProductsBySeller(sellerID int64) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Product
	for _, p := range s.products {
		if p.Seller.ID == sellerID {
			out = append(out, p)
		}
	}
	return out
}

// --- Conversations ---

// EnsureConversation registers the conversation unless one with the same key
// already exists. It returns the stored conversation and whether it was
// created by this call.
func (s *Store) EnsureConversation(c models.Conversation) (models.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.conversations[c.ID]; ok {
		return copyConversation(existing), false
	}
	stored := c
	stored.Messages = append([]models.DirectMessage(nil), c.Messages...)
	s.conversations[c.ID] = &stored
	s.convOrder = append(s.convOrder, c.ID)
	return copyConversation(&stored), true
}

// Conversation returns a copy of the conversation with the given key.
func (s *Store) Conversation(id string) (models.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.conversations[id]
	if !ok {
		return models.Conversation{}, false
	}
	return copyConversation(c), true
}

// Conversations returns copies of all conversations in creation order.
func (s *Store) Conversations() []models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Conversation, 0, len(s.convOrder))
	for _, id := range s.convOrder {
		out = append(out, copyConversation(s.conversations[id]))
	}
	return out
}

// AppendMessage builds a message with a fresh id and current timestamp and
// appends it to the named conversation. The conversation is re-read by id
// under the lock, so deferred callers (the simulated reply timer) never
// operate on a stale snapshot.
func (s *Store) AppendMessage(conversationID string, senderID int64, text string) (models.DirectMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[conversationID]
	if !ok {
		return models.DirectMessage{}, false
	}
	msg := models.DirectMessage{
		ID:             s.nextIDLocked(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		Timestamp:      time.Now().UnixMilli(),
	}
	c.Messages = append(c.Messages, msg)
	return msg, true
}

func copyConversation(c *models.Conversation) models.Conversation {
	out := *c
	out.Messages = append([]models.DirectMessage(nil), c.Messages...)
	return out
}
