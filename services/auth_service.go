package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"codezest/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

	hasLower = regexp.MustCompile(`[a-z]`)
	hasUpper = regexp.MustCompile(`[A-Z]`)
	hasDigit = regexp.MustCompile(`\d`)
)

// ErrInvalidCredentials covers both bad logins and a wrong current password
// on password change; handlers map it to 401.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ProfileInput struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Bio         string `json:"bio"`
	Avatar      string `json:"avatar"`
	Location    string `json:"location"`
	Occupation  string `json:"occupation"`
	Company     string `json:"company"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Website     string `json:"website"`
	GithubURL   string `json:"githubUrl"`
	LinkedinURL string `json:"linkedinUrl"`
	TwitterURL  string `json:"twitterUrl"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

func validatePassword(errs fieldErrors, field, password string) {
	if len(password) < 8 {
		errs.add(field, "Password must be at least 8 characters")
		return
	}
	if !hasLower.MatchString(password) || !hasUpper.MatchString(password) || !hasDigit.MatchString(password) {
		errs.add(field, "Password must contain at least one uppercase letter, one lowercase letter, and one number")
	}
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, string, error) {
	errs := fieldErrors{}
	if !emailPattern.MatchString(req.Email) {
		errs.add("email", "Please enter a valid email address")
	}
	validatePassword(errs, "password", req.Password)
	if l := len(strings.TrimSpace(req.FirstName)); l < 2 || l > 50 {
		errs.add("firstName", "First name must be between 2 and 50 characters")
	}
	if l := len(strings.TrimSpace(req.LastName)); l < 2 || l > 50 {
		errs.add("lastName", "Last name must be between 2 and 50 characters")
	}
	if err := errs.err(); err != nil {
		return nil, "", err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", persistence("check email", err)
	}
	if count > 0 {
		return nil, "", &ConflictError{Message: "An account with this email already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", persistence("hash password", err)
	}

	user := models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, "", persistence("create user", err)
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", persistence("load user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Profile").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user")
		}
		return nil, persistence("load user", err)
	}
	return &user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, req *ProfileInput) (*models.User, error) {
	errs := fieldErrors{}
	if l := len(strings.TrimSpace(req.FirstName)); l < 2 || l > 50 {
		errs.add("firstName", "First name must be between 2 and 50 characters")
	}
	if l := len(strings.TrimSpace(req.LastName)); l < 2 || l > 50 {
		errs.add("lastName", "Last name must be between 2 and 50 characters")
	}
	if !emailPattern.MatchString(req.Email) {
		errs.add("email", "Please enter a valid email address")
	}
	if len(req.Bio) > 500 {
		errs.add("bio", "Bio must not exceed 500 characters")
	}
	if len(req.Location) > 100 {
		errs.add("location", "Location must not exceed 100 characters")
	}
	if len(req.Occupation) > 100 {
		errs.add("occupation", "Occupation must not exceed 100 characters")
	}
	if len(req.Company) > 100 {
		errs.add("company", "Company must not exceed 100 characters")
	}
	if len(req.Address) > 200 {
		errs.add("address", "Address must not exceed 200 characters")
	}
	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		errs.add("phone", "Please enter a valid phone number")
	}
	for field, value := range map[string]string{
		"avatar":      req.Avatar,
		"website":     req.Website,
		"githubUrl":   req.GithubURL,
		"linkedinUrl": req.LinkedinURL,
		"twitterUrl":  req.TwitterURL,
	} {
		if value != "" && !isHTTPURL(value) {
			errs.add(field, "Please enter a valid URL")
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user")
		}
		return nil, persistence("load user", err)
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, persistence("update user", err)
	}

	// Upsert the profile record.
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, persistence("load profile", err)
	}
	profile.UserID = userID
	profile.Bio = req.Bio
	profile.Avatar = req.Avatar
	profile.Location = req.Location
	profile.Occupation = req.Occupation
	profile.Company = req.Company
	profile.Phone = req.Phone
	profile.Address = req.Address
	profile.Website = req.Website
	profile.GithubURL = req.GithubURL
	profile.LinkedinURL = req.LinkedinURL
	profile.TwitterURL = req.TwitterURL

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, persistence("save profile", err)
	}

	return s.GetProfile(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req *PasswordChangeRequest) error {
	errs := fieldErrors{}
	validatePassword(errs, "newPassword", req.NewPassword)
	if req.NewPassword != req.ConfirmPassword {
		errs.add("confirmPassword", "Passwords don't match")
	}
	if err := errs.err(); err != nil {
		return err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("user")
		}
		return persistence("load user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return persistence("hash password", err)
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("password", string(hash)).Error; err != nil {
		return persistence("update password", err)
	}
	return nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", persistence("sign token", err)
	}
	return signed, nil
}

func isHTTPURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}
