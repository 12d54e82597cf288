package session

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/blueprint-archi/blueprint-go/pkg/models"
	"github.com/blueprint-archi/blueprint-go/pkg/rest"
)

// Identity is the session identity the rest of the client resolves against.
type Identity struct {
	ID      string
	Profile *models.User
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Manager holds the bearer token and the cached profile. The cached identity
// survives transient failures; only a definitive 401/403 downgrades the
// session to logged out.
type Manager struct {
	transport *rest.Transport
	tokenFile string

	mu       sync.Mutex
	token    string
	profile  *models.User
	onLogout []func()
}

func NewManager(transport *rest.Transport, tokenFile string) *Manager {
	m := &Manager{
		transport: transport,
		tokenFile: tokenFile,
	}
	if len(tokenFile) > 0 {
		if raw, err := os.ReadFile(tokenFile); err == nil {
			m.token = strings.TrimSpace(string(raw))
		}
	}
	return m
}

// Token yields the current bearer token, empty when logged out. Safe to hand
// to the transport and the realtime bridge as their token source.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) LoggedIn() bool {
	return len(m.Token()) > 0
}

func (m *Manager) Identity() Identity {
	m.mu.Lock()
	defer m.mu.Unlock()

	identity := Identity{Profile: m.profile}
	if m.profile != nil {
		identity.ID = m.profile.ID
	} else if id, _, err := claims(m.token); err == nil {
		identity.ID = id
	}
	return identity
}

// OnLogout registers a teardown hook (cache reset, bridge close).
func (m *Manager) OnLogout(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLogout = append(m.onLogout, fn)
}

func (m *Manager) Login(ctx context.Context, creds Credentials) (*models.User, error) {
	var resp models.Envelope[loginData]
	if err := m.transport.Do(ctx, http.MethodPost, "/auth/login", nil, creds, &resp); err != nil {
		return nil, err
	}
	m.adopt(resp.Data)
	log.Info().Str("user", resp.Data.User.Username).Msg("Logged in.")
	return m.profileCopy(), nil
}

func (m *Manager) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	var resp models.Envelope[loginData]
	if err := m.transport.Do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	m.adopt(resp.Data)
	log.Info().Str("user", resp.Data.User.Username).Msg("Registered.")
	return m.profileCopy(), nil
}

// Bootstrap restores a session from a persisted token. A failed profile
// fetch downgrades to logged out only when the server definitively rejected
// the token; any other failure keeps whatever identity is cached locally so
// a network blip cannot log the user out.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.mu.Lock()
	token := m.token
	cached := m.profile
	m.mu.Unlock()

	if len(token) == 0 {
		return nil
	}
	if _, exp, err := claims(token); err == nil && !exp.IsZero() && exp.Before(time.Now()) {
		log.Debug().Msg("Persisted token already expired, logging out.")
		m.Logout()
		return nil
	}
	if cached != nil {
		return nil
	}

	var resp models.Envelope[models.User]
	if err := m.transport.Do(ctx, http.MethodGet, "/auth/me", nil, nil, &resp); err != nil {
		if rest.IsAuthError(err) {
			log.Debug().Msg("Persisted token rejected, logging out.")
			m.Logout()
			return nil
		}
		return fmt.Errorf("unable to restore session profile: %v", err)
	}

	m.mu.Lock()
	m.profile = &resp.Data
	m.mu.Unlock()
	return nil
}

// Logout clears the token and profile and runs the teardown hooks.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.token = ""
	m.profile = nil
	hooks := append([]func(){}, m.onLogout...)
	tokenFile := m.tokenFile
	m.mu.Unlock()

	if len(tokenFile) > 0 {
		_ = os.Remove(tokenFile)
	}
	for _, fn := range hooks {
		fn()
	}
	log.Info().Msg("Logged out.")
}

func (m *Manager) adopt(data loginData) {
	m.mu.Lock()
	m.token = data.Token
	user := data.User
	m.profile = &user
	tokenFile := m.tokenFile
	m.mu.Unlock()

	if len(tokenFile) > 0 {
		if err := os.WriteFile(tokenFile, []byte(data.Token), 0o600); err != nil {
			log.Warn().Err(err).Msg("An error occurred when persisting the session token...")
		}
	}
}

func (m *Manager) profileCopy() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return nil
	}
	copied := *m.profile
	return &copied
}

// claims parses the token without verifying it; the client only needs the
// subject and expiry, the server is the verifier.
func claims(token string) (string, time.Time, error) {
	if len(token) == 0 {
		return "", time.Time{}, fmt.Errorf("no token")
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("unable to parse session token: %v", err)
	}
	subject, _ := parsed.Claims.GetSubject()
	var expiry time.Time
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		expiry = exp.Time
	}
	return subject, expiry, nil
}
