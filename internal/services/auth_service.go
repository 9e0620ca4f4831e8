package services

import (
	"database/sql"

	"github.com/campusride/carpool-backend/internal/apperrors"
	"github.com/campusride/carpool-backend/internal/database"
	"github.com/campusride/carpool-backend/internal/models"
	"github.com/campusride/carpool-backend/internal/utils"
	"github.com/campusride/carpool-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies credentials and issues user identities. The
// ride-matching core never touches credentials; it only ever sees the
// authenticated user ID this service produces.
type AuthService struct {
	userRepo    *database.UserRepository
	sessionRepo *database.SessionRepository
	jwtService  *jwt.Service
	bcryptCost  int
	logger      *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *database.UserRepository, sessionRepo *database.SessionRepository, jwtService *jwt.Service, bcryptCost int, logger *logrus.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

// Register creates a new user with a hashed credential.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.User, error) {
	if !models.ValidEmail(req.Email) {
		return nil, apperrors.Validation("invalid email format")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.Validation("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Transient("failed to hash password", err)
	}

	user := &models.User{
		RollNumber:   req.RollNumber,
		CollegeName:  req.CollegeName,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	return user, nil
}

// Login verifies the credential and issues access and refresh tokens. The
// login session is recorded with the device the request came from; a
// failure to record it does not fail the login.
func (s *AuthService) Login(req *models.LoginRequest, ipAddress, userAgent string) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Authorization("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Authorization("invalid email or password")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Transient("failed to issue access token", err)
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Transient("failed to issue refresh token", err)
	}

	device := utils.ParseUserAgent(userAgent)
	session := &models.LoginSession{
		UserID:     user.ID,
		IPAddress:  models.NullString{NullString: sql.NullString{String: ipAddress, Valid: ipAddress != ""}},
		UserAgent:  models.NullString{NullString: sql.NullString{String: userAgent, Valid: userAgent != ""}},
		DeviceType: device.DeviceType,
		OS:         device.OS,
		Browser:    device.Browser,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to record login session")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"device":  device.DeviceType,
	}).Info("User logged in")

	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperrors.Authorization("invalid refresh token")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return "", apperrors.Transient("failed to issue access token", err)
	}

	return accessToken, nil
}
