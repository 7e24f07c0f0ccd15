package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/natansalgado/otabank/internal/domain"
)

// ClientInput carries the caller-supplied client fields. For updates, empty
// fields are left unchanged.
type ClientInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// ClientService handles client record management
type ClientService struct {
	ClientRepo domain.ClientRepository
}

// NewClientService creates a new ClientService instance
func NewClientService(clientRepo domain.ClientRepository) *ClientService {
	return &ClientService{ClientRepo: clientRepo}
}

// FindAll returns every client
func (s *ClientService) FindAll(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.ClientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return clients, nil
}

// FindClient looks up one client by its id
func (s *ClientService) FindClient(ctx context.Context, id string) (*domain.Client, error) {
	clientID, err := parseInteger(id)
	if err != nil {
		return nil, domain.ErrInvalidIDFormat
	}

	client, err := s.ClientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}

// AddClient creates a client. All fields are required, the email must be
// unused, and the password is stored as a bcrypt hash.
func (s *ClientService) AddClient(ctx context.Context, input ClientInput) (*domain.Client, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Phone == "" || input.Address == "" {
		return nil, domain.ErrMissingClientFields
	}

	if _, err := s.ClientRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNoRecord) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	client := &domain.Client{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Phone:    input.Phone,
		Address:  input.Address,
	}

	if err := s.ClientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// UpdateClient applies a partial update: empty input fields keep their stored
// value, and a supplied password is re-hashed.
func (s *ClientService) UpdateClient(ctx context.Context, id string, input ClientInput) (*domain.Client, error) {
	clientID, err := parseInteger(id)
	if err != nil {
		return nil, domain.ErrInvalidIDFormat
	}

	client, err := s.ClientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	if input.Name != "" {
		client.Name = input.Name
	}
	if input.Email != "" && input.Email != client.Email {
		if _, err := s.ClientRepo.GetByEmail(ctx, input.Email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrNoRecord) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		client.Email = input.Email
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		client.Password = string(hashed)
	}
	if input.Phone != "" {
		client.Phone = input.Phone
	}
	if input.Address != "" {
		client.Address = input.Address
	}

	if err := s.ClientRepo.Update(ctx, client); err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return client, nil
}

// DeleteClient removes a client and returns the removed record; its accounts
// and their transactions cascade with it
func (s *ClientService) DeleteClient(ctx context.Context, id string) (*domain.Client, error) {
	clientID, err := parseInteger(id)
	if err != nil {
		return nil, domain.ErrInvalidIDFormat
	}

	client, err := s.ClientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	if err := s.ClientRepo.Delete(ctx, clientID); err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to delete client: %w", err)
	}

	return client, nil
}

func parseInteger(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
