package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Obiagu00/CampusConnectNG/internal/models"
	"github.com/Obiagu00/CampusConnectNG/internal/store"
)

// ErrEmailExists is returned when an attempt is made to use an email that already exists.
var ErrEmailExists = errors.New("email already in use by another account")

// ErrUserNotFound is returned when a login email matches no account.
var ErrUserNotFound = errors.New("user not found")

// ErrNotLoggedIn is returned when an action requires a session user and there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// ErrInvalidInput is returned when a required field is missing or malformed.
var ErrInvalidInput = errors.New("invalid input")

// SignUpDetails carries the fields collected by the sign-up form.
type SignUpDetails struct {
	Name           string
	Email          string
	UniversityName string
	Password       string
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name           string
	UniversityName string
}

// IUserService defines the interface for user and session operations.
type IUserService interface {
	SignUp(ctx context.Context, details SignUpDetails) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error)
}

// userService implements IUserService.
type userService struct {
	store *store.Store
	views IViewService
}

// NewUserService creates a new UserService. The view service is consulted on
// logout to route the user back to the marketplace.
func NewUserService(st *store.Store, views IViewService) IUserService {
	return &userService{store: st, views: views}
}

// SignUp creates a new account and starts a session for it. Duplicate emails
// are rejected case-insensitively.
func (s *userService) SignUp(ctx context.Context, details SignUpDetails) (*models.User, error) {
	name := strings.TrimSpace(details.Name)
	email := strings.TrimSpace(details.Email)
	if name == "" || email == "" || strings.TrimSpace(details.UniversityName) == "" {
		return nil, fmt.Errorf("%w: name, email and university are required", ErrInvalidInput)
	}
	if _, exists := s.store.FindUserByEmail(email); exists {
		return nil, ErrEmailExists
	}

	user := models.User{
		ID:             s.store.NextID(),
		Name:           name,
		Email:          email,
		UniversityName: details.UniversityName,
		Password:       details.Password,
	}
	s.store.AddUser(user)
	s.store.SetCurrentUser(user.ID)
	log.Printf("New user signed up: %d (%s)", user.ID, user.Email)
	return &user, nil
}

// Login starts a session for the account matching the email. The email match
// is case-insensitive. The password is accepted but not verified; there is no
// credential check.
func (s *userService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, ok := s.store.FindUserByEmail(strings.TrimSpace(email))
	if !ok {
		return nil, ErrUserNotFound
	}
	s.store.SetCurrentUser(user.ID)
	return &user, nil
}

// Logout ends the session and returns the view to the marketplace. Products
// and conversations are kept for the remainder of the process lifetime.
func (s *userService) Logout(ctx context.Context) {
	s.store.ClearCurrentUser()
	s.views.BackToMarketplace(ctx)
}

// CurrentUser returns the session user or ErrNotLoggedIn.
func (s *userService) CurrentUser(ctx context.Context) (*models.User, error) {
	user, ok := s.store.CurrentUser()
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return &user, nil
}

// UpdateProfile updates the session user's name and university and propagates
// the new name into the seller snapshot of every product they own. The
// propagation is atomic: no reader observes a partially renamed collection.
func (s *userService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	current, ok := s.store.CurrentUser()
	if !ok {
		return nil, ErrNotLoggedIn
	}
	name := strings.TrimSpace(update.Name)
	university := strings.TrimSpace(update.UniversityName)
	if name == "" || university == "" {
		return nil, fmt.Errorf("%w: name and university are required", ErrInvalidInput)
	}

	updated, ok := s.store.UpdateUserAndPropagate(current.ID, name, university)
	if !ok {
		return nil, ErrUserNotFound
	}
	return &updated, nil
}
