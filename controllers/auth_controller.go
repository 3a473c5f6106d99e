// Package controllers handles user authentication and session management.
// file: controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"go-con-board/logger"
	"go-con-board/services"
)

// AuthController signs users in and out and registers new accounts.
type AuthController struct {
	store services.Store
}

// NewAuthController wires authentication to its store.
func NewAuthController(store services.Store) *AuthController {
	return &AuthController{store: store}
}

// ShowLogin renders the login form.
func (ac *AuthController) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// PerformLogin processes user authentication.
func (ac *AuthController) PerformLogin(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	password := c.PostForm("password")

	user, err := ac.store.UserByEmail(email)
	if err != nil {
		if !errors.Is(err, services.ErrUserNotFound) {
			logger.Error.Printf("PerformLogin: lookup failed: %v", err)
		}
		ac.loginFailed(c, "Invalid email or password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn.Printf("PerformLogin: bad password for %s", email)
		ac.loginFailed(c, "Invalid email or password.")
		return
	}

	if !user.BannedUntil.IsZero() && user.BannedUntil.After(time.Now()) {
		logger.Warn.Printf("PerformLogin: suspended account %s attempted login", email)
		ac.loginFailed(c, "This account is suspended.")
		return
	}

	session := sessions.Default(c)
	session.Set("userID", user.ID)
	session.Set("userEmail", user.Email)
	if err := session.Save(); err != nil {
		logger.Error.Printf("PerformLogin: session save failed: %v", err)
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}

	logger.Info.Printf("PerformLogin: %s signed in", email)
	c.Redirect(http.StatusFound, "/")
}

func (ac *AuthController) loginFailed(c *gin.Context, msg string) {
	c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": msg})
}

// ShowRegister renders the account creation form.
func (ac *AuthController) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// PerformRegister creates an account and signs it in.
func (ac *AuthController) PerformRegister(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	password := c.PostForm("password")

	if email == "" || !strings.Contains(email, "@") {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": "A valid email is required."})
		return
	}
	if len(password) < 8 {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": "Password must be at least 8 characters."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error.Printf("PerformRegister: hashing failed: %v", err)
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}

	id, err := ac.store.CreateUser(email, string(hash))
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.HTML(http.StatusConflict, "register.html", gin.H{"Error": "That email already has an account."})
			return
		}
		logger.Error.Printf("PerformRegister: create failed: %v", err)
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}

	session := sessions.Default(c)
	session.Set("userID", id)
	session.Set("userEmail", email)
	if err := session.Save(); err != nil {
		logger.Error.Printf("PerformRegister: session save failed: %v", err)
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}

	logger.Info.Printf("PerformRegister: account created for %s", email)
	c.Redirect(http.StatusFound, "/")
}
