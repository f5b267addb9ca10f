package services

import (
	"fmt"

	"openchat/auth"
	"openchat/domain"
	"openchat/errors"
	"openchat/repositories"
	"openchat/search"
)

type IAuthService interface {
	Register(name, email, password string) (Token, domain.User, error)
	Login(email, password string) (Token, domain.User, error)
}

type AuthService struct {
	userRepository repositories.IUserRepository
	userIndex      *search.UserIndex
	tokens         *auth.TokenManager
}

type Token string

func NewAuthService(repo repositories.IUserRepository, index *search.UserIndex, tokens *auth.TokenManager) IAuthService {
	return &AuthService{userRepository: repo, userIndex: index, tokens: tokens}
}

func (s *AuthService) Register(name, email, password string) (Token, domain.User, error) {
	valReq := auth.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}

	// Validate business rules (email format, password complexity) before any
	// expensive cryptographic operation.
	if err := auth.ValidateRegister(valReq); err != nil {
		return "", domain.User{}, fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}

	// Hashing happens in the service layer to keep the repository unaware of
	// plain passwords.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("hashing failed: %w", err)
	}

	user, err := s.userRepository.CreateUser(name, email, hashedPassword)
	if err != nil {
		return "", domain.User{}, err // Propagates ErrUserAlreadyExists if the email is taken.
	}

	// The search index is derivative data: an indexing failure must not fail
	// the registration, the account already exists.
	if s.userIndex != nil {
		_ = s.userIndex.Index(user)
	}

	token, err := s.tokens.Generate(user.ID, user.Name)
	if err != nil {
		return "", domain.User{}, errors.ErrTokenGeneration
	}
	return Token(token), user, nil
}

func (s *AuthService) Login(email, password string) (Token, domain.User, error) {
	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		// Generic error to prevent user enumeration attacks.
		return "", domain.User{}, errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", domain.User{}, errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Name)
	if err != nil {
		return "", domain.User{}, errors.ErrTokenGeneration
	}
	return Token(token), user, nil
}
