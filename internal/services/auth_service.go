package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/calmind-app/calmind-backend/internal/config"
	"github.com/calmind-app/calmind-backend/internal/dto"
	"github.com/calmind-app/calmind-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// RegisterPatient creates the user and its patient row in one transaction.
func (s *AuthService) RegisterPatient(req *dto.RegisterPatientRequest) (*dto.AuthResponse, error) {
	if taken, err := s.emailTaken(req.Email, uuid.Nil); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:          uuid.New(),
		Firstname:   req.Firstname,
		Lastname:    req.Lastname,
		Email:       req.Email,
		Password:    string(hash),
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		Role:        models.RolePatient,
	}
	patient := models.Patient{ID: uuid.New(), UserID: user.ID}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create patient account: %w", err)
	}

	return s.generateTokenPair(&user, patient.ID)
}

// RegisterPsychologist creates the user and an unverified psychologist row.
// Verification is granted later by an admin and gates the public listing.
func (s *AuthService) RegisterPsychologist(req *dto.RegisterPsychologistRequest) (*dto.AuthResponse, error) {
	if taken, err := s.emailTaken(req.Email, uuid.Nil); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:          uuid.New(),
		Firstname:   req.Firstname,
		Lastname:    req.Lastname,
		Email:       req.Email,
		Password:    string(hash),
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		Role:        models.RolePsychologist,
	}
	psychologist := models.Psychologist{
		ID:                               uuid.New(),
		UserID:                           user.ID,
		ProfessionalIdentificationNumber: req.ProfessionalIdentificationNumber,
		Degree:                           req.Degree,
		Specialization:                   req.Specialization,
		WorkExperience:                   req.WorkExperience,
		IsVerified:                       false,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&psychologist).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create psychologist account: %w", err)
	}

	return s.generateTokenPair(&user, psychologist.ID)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	profileID, err := s.profileID(&user)
	if err != nil {
		return nil, err
	}
	return s.generateTokenPair(&user, profileID)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	profileID, err := s.profileID(&user)
	if err != nil {
		return nil, err
	}
	return s.generateTokenPair(&user, profileID)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// Profile returns the user plus its role record.
func (s *AuthService) Profile(userID uuid.UUID) (*dto.ProfileResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	resp := &dto.ProfileResponse{User: userResponse(&user)}
	switch user.Role {
	case models.RolePatient:
		var patient models.Patient
		if err := s.db.Where("user_id = ?", user.ID).First(&patient).Error; err == nil {
			resp.Patient = patient
		}
	case models.RolePsychologist:
		var psychologist models.Psychologist
		if err := s.db.Where("user_id = ?", user.ID).First(&psychologist).Error; err == nil {
			resp.Psychologist = psychologist
		}
	}
	return resp, nil
}

// DeleteAccount removes the user after re-checking the password. Role rows,
// appointments and analyzer records go with it via cascade.
func (s *AuthService) DeleteAccount(userID uuid.UUID, password string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{})
		return tx.Delete(&user).Error
	})
}

func (s *AuthService) emailTaken(email string, excludeUserID uuid.UUID) (bool, error) {
	var count int64
	q := s.db.Model(&models.User{}).Where("email = ?", email)
	if excludeUserID != uuid.Nil {
		q = q.Where("id <> ?", excludeUserID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// profileID resolves the patient or psychologist row id for the JWT claims.
func (s *AuthService) profileID(user *models.User) (uuid.UUID, error) {
	switch user.Role {
	case models.RolePatient:
		var patient models.Patient
		if err := s.db.Where("user_id = ?", user.ID).First(&patient).Error; err != nil {
			return uuid.Nil, ErrPatientNotFound
		}
		return patient.ID, nil
	case models.RolePsychologist:
		var psychologist models.Psychologist
		if err := s.db.Where("user_id = ?", user.ID).First(&psychologist).Error; err != nil {
			return uuid.Nil, ErrPsychologistNotFound
		}
		return psychologist.ID, nil
	}
	return uuid.Nil, nil
}

func (s *AuthService) generateTokenPair(user *models.User, profileID uuid.UUID) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user, profileID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         userResponse(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User, profileID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}
	if profileID != uuid.Nil {
		claims["profile_id"] = profileID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             user.ID,
		Firstname:      user.Firstname,
		Lastname:       user.Lastname,
		Email:          user.Email,
		PhoneNumber:    user.PhoneNumber,
		Gender:         user.Gender,
		ProfilePicture: user.ProfilePicture,
		Role:           user.Role,
	}
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
