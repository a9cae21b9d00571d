package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
	googleOauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/softballsistem/SoftballStads-Ochoa/middleware"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/services"
)

const oauthStateCookie = "oauthstate"

type AuthHandler struct {
	authService services.AuthService
	userService services.UserService
	jwtSecret   []byte
	oauthConfig *oauth2.Config
	frontendURL string
}

// NewAuthHandler создаёт обработчик аутентификации. oauthConfig может
// быть nil, тогда маршруты Google OAuth отвечают 404.
func NewAuthHandler(authService services.AuthService, userService services.UserService, jwtSecret string, oauthConfig *oauth2.Config, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		jwtSecret:   []byte(jwtSecret),
		oauthConfig: oauthConfig,
		frontendURL: frontendURL,
	}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input services.SignUpInput

	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	user, err := h.authService.SignUp(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	tokenString, err := h.issueToken(user)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{
		"user":  user,
		"token": tokenString,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var input services.SignInInput

	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.EmailOrUsername == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email_or_username and password are required"))
		return
	}

	user, err := h.authService.SignIn(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	tokenString, err := h.issueToken(user)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{
		"user":  user,
		"token": tokenString,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GoogleLogin перенаправляет пользователя на страницу согласия Google.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.oauthConfig == nil {
		notFoundResponse(w, r)
		return
	}
	state := generateStateOauthCookie(w)
	http.Redirect(w, r, h.oauthConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback принимает редирект от Google, обменивает код на токен,
// подтягивает профиль и выдаёт собственный JWT приложения.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.oauthConfig == nil {
		notFoundResponse(w, r)
		return
	}

	oauthState, err := r.Cookie(oauthStateCookie)
	if err != nil || r.FormValue("state") != oauthState.Value {
		unauthorizedResponse(w, r, "invalid oauth state")
		return
	}

	code := r.FormValue("code")
	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to exchange code for token: %w", err))
		return
	}

	oauth2Service, err := googleOauth2.NewService(r.Context(),
		option.WithTokenSource(h.oauthConfig.TokenSource(r.Context(), token)))
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to create oauth service: %w", err))
		return
	}
	userInfo, err := oauth2Service.Userinfo.Get().Do()
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to get user info: %w", err))
		return
	}

	user, err := h.authService.EnsureProfile(r.Context(), userInfo.Email)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	appToken, err := h.issueToken(user)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	redirectURL := fmt.Sprintf("%s/auth/callback?token=%s", h.frontendURL, url.QueryEscape(appToken))
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// Me возвращает профиль текущего пользователя по токену.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	user, err := h.userService.GetProfile(r.Context(), uid)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) ChangeUsername(w http.ResponseWriter, r *http.Request) {
	uid, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		Username string `json:"username"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.ChangeUsername(r.Context(), uid, input.Username)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) issueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.UID,
		"role":    user.Role,
		"name":    user.Username,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(h.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// generateStateOauthCookie ставит одноразовый state в HttpOnly-cookie
// для защиты от CSRF в OAuth-потоке.
func generateStateOauthCookie(w http.ResponseWriter) string {
	b := make([]byte, 16)
	rand.Read(b)
	state := hex.EncodeToString(b)
	cookie := &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
	}
	http.SetCookie(w, cookie)
	return state
}
