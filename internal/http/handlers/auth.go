package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	intconfig "yatrasathi/internal/config"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
)

// env holds the runtime configuration handlers need (JWT secret, fare,
// broker/SMTP endpoints). Set once from the router before serving.
var env intconfig.Env

func Init(e intconfig.Env) { env = e }

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func issueToken(u models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
		"exp":     time.Now().Add(time.Duration(env.TokenTTLHrs) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(env.JWTSecret))
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	login := strings.TrimSpace(req.Username)
	if login == "" {
		login = strings.TrimSpace(req.Email)
	}
	if login == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "username and password are required", nil)
		return
	}

	user, err := repositories.UserRepository{}.GetByLogin(login)
	if err != nil {
		// Same response for unknown user and wrong password.
		RespondError(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if !user.Active {
		RespondError(c, http.StatusForbidden, "account is deactivated", nil)
		return
	}

	token, err := issueToken(user)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"role":   user.Role,
		"userId": user.ID,
		"email":  user.Email,
	})
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Aadhaar  string `json:"aadhaar"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /api/auth/signup registers a new customer. Staff accounts are
// created through the admin console only.
func Signup(c *gin.Context) {
	var req signupRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.UserRepository{}
	exists, err := repo.ExistsByEmailOrPhone(req.Email, req.Phone)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		RespondError(c, http.StatusBadRequest, "user already exists with provided details", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Aadhaar:      strings.TrimSpace(req.Aadhaar),
		PasswordHash: string(hash),
		Role:         string(domain.RoleCustomer),
		Active:       true,
	}
	id, err := repo.Create(user)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	user.ID = id

	token, err := issueToken(user)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"role":   user.Role,
		"userId": user.ID,
		"email":  user.Email,
	})
}
