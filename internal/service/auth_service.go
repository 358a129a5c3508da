package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/plantree"
	"alcyxob/coaching-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// coachCodeAttempts bounds retries when a freshly minted coach code is already taken.
const coachCodeAttempts = 3

// RegisterInput carries a sign-up request. CoachID is the code of the coach an athlete joins.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     domain.Role
	CoachID  string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// ListAthletes returns the athletes that signed up with the calling coach's code.
	ListAthletes(ctx context.Context, p Principal) ([]domain.User, error)
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	newID         plantree.IDGenerator
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration, newID plantree.IDGenerator) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	if newID == nil {
		newID = plantree.NewID
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		newID:         newID,
	}
}

// Register handles new user registration. Coaches receive a fresh coach code.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.FullName == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: fullName, email and password cannot be empty", ErrInvalidInput)
	}
	if in.Role != domain.RoleCoach && in.Role != domain.RoleAthlete {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}

	_, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user := &domain.User{
		FullName: in.FullName,
		Email:    in.Email,
		Role:     in.Role,
	}

	if in.Role == domain.RoleAthlete && in.CoachID != "" {
		if _, err := s.userRepo.GetCoachByCoachID(ctx, in.CoachID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrCoachNotFound
			}
			return nil, err
		}
		user.CoachID = in.CoachID
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}
	user.PasswordHash = string(hashedPassword)

	attempts := 1
	if user.IsCoach() {
		attempts = coachCodeAttempts
	}
	for i := 0; i < attempts; i++ {
		if user.IsCoach() {
			user.CoachID = s.newID(domain.PrefixCoach)
		}
		_, err = s.userRepo.Create(ctx, user)
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
		// Email raced with another sign-up, or the coach code is taken: tell them apart.
		if _, getErr := s.userRepo.GetByEmail(ctx, in.Email); getErr == nil {
			return nil, ErrUserAlreadyExists
		}
		if user.IsCoach() {
			log.WithField("coachId", user.CoachID).Warn("coach code collision, minting another")
		}
	}
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	log.WithFields(log.Fields{"userId": user.ID.Hex(), "role": user.Role}).Info("user registered")

	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password cannot be empty", ErrInvalidInput)
	}

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err = s.generateJWT(user)
	if err != nil {
		log.Errorf("sign token for %s: %s", user.ID.Hex(), err)
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

func (s *authService) GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) ListAthletes(ctx context.Context, p Principal) ([]domain.User, error) {
	if !p.IsCoach() {
		return nil, ErrNotCoach
	}
	athletes, err := s.userRepo.GetAthletesByCoachID(ctx, p.CoachID)
	if err != nil {
		return nil, err
	}
	for i := range athletes {
		athletes[i].PasswordHash = ""
	}
	return athletes, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID  string      `json:"uid"`
	Role    domain.Role `json:"role"`
	CoachID string      `json:"coachId,omitempty"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID:  user.ID.Hex(),
		Role:    user.Role,
		CoachID: user.CoachID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "coaching-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
