package services

import (
	"context"
	"sync"

	"github.com/Obiagu00/CampusConnectNG/internal/models"
	"github.com/Obiagu00/CampusConnectNG/internal/store"
)

// View names a screen of the application.
type View string

const (
	ViewMarketplace View = "marketplace"
	ViewDetail      View = "detail"
	ViewSell        View = "sell"
	ViewProfile     View = "profile" // a seller's public profile
	ViewMyListings  View = "myListings"
	ViewMyProfile   View = "myProfile"
)

// AuthMode selects which form the auth prompt shows.
type AuthMode string

const (
	AuthModeLogin  AuthMode = "login"
	AuthModeSignUp AuthMode = "signup"
)

// ViewState is a read-only snapshot of the coordinator state.
type ViewState struct {
	Active               View
	FocusedProduct       *models.Product
	FocusedSeller        *models.Seller
	ActiveConversationID string
	AuthPromptOpen       bool
	AuthMode             AuthMode
}

// IViewService routes navigation intents. It holds which screen is active and
// which entity is focused; it never mutates the entity collections itself.
type IViewService interface {
	State(ctx context.Context) ViewState
	ViewProduct(ctx context.Context, productID int64) error
	ViewSeller(ctx context.Context, seller models.Seller)
	BackToMarketplace(ctx context.Context)
	StartSelling(ctx context.Context)
	ViewMyListings(ctx context.Context)
	ViewMyProfile(ctx context.Context)
	OpenAuthPrompt(ctx context.Context, mode AuthMode)
	CloseAuthPrompt(ctx context.Context)
	OpenConversation(ctx context.Context, conversationID string) error
	CloseChat(ctx context.Context)
}

// viewService implements IViewService.
type viewService struct {
	store *store.Store

	mu    sync.Mutex
	state ViewState
}

// NewViewService creates a new ViewService starting on the marketplace.
func NewViewService(st *store.Store) IViewService {
	return &viewService{
		store: st,
		state: ViewState{Active: ViewMarketplace},
	}
}

// State returns a copy of the current coordinator state.
func (s *viewService) State(ctx context.Context) ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	if s.state.FocusedProduct != nil {
		p := *s.state.FocusedProduct
		out.FocusedProduct = &p
	}
	if s.state.FocusedSeller != nil {
		sel := *s.state.FocusedSeller
		out.FocusedSeller = &sel
	}
	return out
}

// ViewProduct focuses the product and switches to the detail view.
func (s *viewService) ViewProduct(ctx context.Context, productID int64) error {
	product, ok := s.store.FindProductByID(productID)
	if !ok {
		return ErrProductNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.FocusedProduct = &product
	s.state.Active = ViewDetail
	return nil
}

// ViewSeller focuses the seller and switches to their public profile.
func (s *viewService) ViewSeller(ctx context.Context, seller models.Seller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.FocusedSeller = &seller
	s.state.Active = ViewProfile
}

// BackToMarketplace clears any focus and returns to the marketplace.
func (s *viewService) BackToMarketplace(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.FocusedProduct = nil
	s.state.FocusedSeller = nil
	s.state.Active = ViewMarketplace
}

// StartSelling switches to the sell form, or opens the login prompt when no
// user is signed in.
func (s *viewService) StartSelling(ctx context.Context) {
	s.guardedNavigate(ViewSell)
}

// ViewMyListings switches to the session user's listings, or opens the login
// prompt when no user is signed in.
func (s *viewService) ViewMyListings(ctx context.Context) {
	s.guardedNavigate(ViewMyListings)
}

// ViewMyProfile switches to the session user's profile, or opens the login
// prompt when no user is signed in.
func (s *viewService) ViewMyProfile(ctx context.Context) {
	s.guardedNavigate(ViewMyProfile)
}

func (s *viewService) guardedNavigate(target View) {
	_, loggedIn := s.store.CurrentUser()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !loggedIn {
		s.state.AuthPromptOpen = true
		s.state.AuthMode = AuthModeLogin
		return
	}
	s.state.Active = target
}

// OpenAuthPrompt shows the login or sign-up form.
func (s *viewService) OpenAuthPrompt(ctx context.Context, mode AuthMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AuthPromptOpen = true
	s.state.AuthMode = mode
}

// CloseAuthPrompt hides the auth form.
func (s *viewService) CloseAuthPrompt(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AuthPromptOpen = false
}

// OpenConversation focuses an existing conversation thread.
func (s *viewService) OpenConversation(ctx context.Context, conversationID string) error {
	if _, ok := s.store.Conversation(conversationID); !ok {
		return ErrConversationNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveConversationID = conversationID
	return nil
}

// CloseChat hides the chat overlay. The conversation data itself is kept.
func (s *viewService) CloseChat(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveConversationID = ""
}
