package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Obiagu00/CampusConnectNG/internal/models"
	"github.com/Obiagu00/CampusConnectNG/internal/store"
)

// ErrSelfContact is returned when a user tries to open a conversation about
// their own listing.
var ErrSelfContact = errors.New("cannot contact yourself about your own listing")

// ErrConversationNotFound is returned when a conversation id matches no thread.
var ErrConversationNotFound = errors.New("conversation not found")

// SellerAutoReply is the fixed acknowledgement text of the simulated seller
// reply. It stands in for a real backend notification.
const SellerAutoReply = "Thanks for your message! The seller has been notified and will get back to you shortly."

// IConversationService defines the interface for buyer-seller messaging.
type IConversationService interface {
	ContactSeller(ctx context.Context, productID int64) (*models.Conversation, error)
	SendMessage(ctx context.Context, conversationID, text string) (*models.DirectMessage, error)
	Conversation(ctx context.Context, id string) (*models.Conversation, error)
	Conversations(ctx context.Context) []models.Conversation
	Stop()
}

// conversationService implements IConversationService. Each buyer message
// schedules its own delayed seller reply; the timers are tracked so shutdown
// can cancel whatever has not fired yet.
type conversationService struct {
	store      *store.Store
	replyDelay time.Duration

	mu      sync.Mutex
	timers  map[int64]*time.Timer // keyed by the id of the message that triggered the reply
	stopped bool
}

// NewConversationService creates a new ConversationService. replyDelay is how
// long after a buyer message the simulated seller reply is delivered.
func NewConversationService(st *store.Store, replyDelay time.Duration) IConversationService {
	return &conversationService{
		store:      st,
		replyDelay: replyDelay,
		timers:     make(map[int64]*time.Timer),
	}
}

// ContactSeller opens (or returns) the conversation between the session user
// and the product's seller about that product. The composite key guarantees
// at most one thread per (buyer, seller, product); repeated contact is
// idempotent. Product name and image are denormalized at this instant.
func (s *conversationService) ContactSeller(ctx context.Context, productID int64) (*models.Conversation, error) {
	buyer, ok := s.store.CurrentUser()
	if !ok {
		return nil, ErrNotLoggedIn
	}
	product, ok := s.store.FindProductByID(productID)
	if !ok {
		return nil, ErrProductNotFound
	}
	if buyer.ID == product.Seller.ID {
		return nil, ErrSelfContact
	}

	key := models.ConversationKey(buyer.ID, product.Seller.ID, product.ID)
	convo, created := s.store.EnsureConversation(models.Conversation{
		ID:              key,
		ProductID:       product.ID,
		ProductName:     product.Name,
		ProductImageURL: product.ImageURL,
		Buyer:           buyer.AsSeller(),
		Seller:          product.Seller,
	})
	if created {
		log.Printf("Conversation %s opened (buyer %d, seller %d, product %d)", key, buyer.ID, product.Seller.ID, product.ID)
	}
	return &convo, nil
}

// SendMessage appends a message from the session user to the conversation.
// The message is visible immediately; if the sender is the buyer, a simulated
// seller reply is scheduled to arrive after the configured delay.
func (s *conversationService) SendMessage(ctx context.Context, conversationID, text string) (*models.DirectMessage, error) {
	sender, ok := s.store.CurrentUser()
	if !ok {
		return nil, ErrNotLoggedIn
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message text must not be empty", ErrInvalidInput)
	}
	convo, ok := s.store.Conversation(conversationID)
	if !ok {
		return nil, ErrConversationNotFound
	}

	msg, ok := s.store.AppendMessage(conversationID, sender.ID, text)
	if !ok {
		return nil, ErrConversationNotFound
	}

	if sender.ID == convo.Buyer.ID {
		s.scheduleReply(conversationID, msg.ID)
	}
	return &msg, nil
}

// Conversation returns the thread with the given composite key.
func (s *conversationService) Conversation(ctx context.Context, id string) (*models.Conversation, error) {
	convo, ok := s.store.Conversation(id)
	if !ok {
		return nil, ErrConversationNotFound
	}
	return &convo, nil
}

// Conversations returns all threads in creation order.
func (s *conversationService) Conversations(ctx context.Context) []models.Conversation {
	return s.store.Conversations()
}

// scheduleReply arms an independent timer per triggering message. There is no
// debouncing: messages sent in quick succession each get their own reply.
func (s *conversationService) scheduleReply(conversationID string, triggerMsgID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.timers[triggerMsgID] = time.AfterFunc(s.replyDelay, func() {
		s.deliverReply(conversationID, triggerMsgID)
	})
}

// deliverReply fires on the timer goroutine. It re-reads the conversation by
// id rather than using a captured snapshot, so state changes between
// scheduling and firing cannot be clobbered.
func (s *conversationService) deliverReply(conversationID string, triggerMsgID int64) {
	s.mu.Lock()
	delete(s.timers, triggerMsgID)
	stopped := s.stopped
	s.mu.Unlock()
	if stopped {
		return
	}

	convo, ok := s.store.Conversation(conversationID)
	if !ok {
		return
	}
	if _, ok := s.store.AppendMessage(conversationID, convo.Seller.ID, SellerAutoReply); ok {
		log.Printf("Simulated seller reply delivered in conversation %s", conversationID)
	}
}

// Stop cancels all pending simulated replies. Called once at shutdown; the
// service accepts no further scheduling afterwards.
func (s *conversationService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}
