package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/auth"
	"github.com/dmitrijs2005/taskvault/internal/server/config"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// googleUserInfo is the subset of the provider's userinfo payload we consume.
type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// FederationService drives the federated-login round trip against an OAuth
// provider: Start hands out the redirect URL, Callback turns the provider's
// code into a local account and access token.
type FederationService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	oauth                       *oauth2.Config
	userInfoURL                 string
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	stateValidityDuration       time.Duration
}

func NewFederationService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *FederationService {
	return &FederationService{
		db:          db,
		repomanager: m,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.GoogleAuthURL,
				TokenURL: cfg.GoogleTokenURL,
			},
		},
		userInfoURL:                 cfg.GoogleUserInfoURL,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		stateValidityDuration:       cfg.OAuthStateValidityDuration,
	}
}

// Start persists a fresh single-use state token and returns the provider
// authorization URL carrying it.
func (s *FederationService) Start(ctx context.Context) (string, error) {
	state, err := common.MakeRandHexString(32)
	if err != nil {
		return "", fmt.Errorf("error generating state: %w", err)
	}

	repo := s.repomanager.OAuthStates(s.db)
	if err := repo.Create(ctx, state, s.stateValidityDuration); err != nil {
		return "", fmt.Errorf("error saving state: %w", err)
	}

	return s.oauth.AuthCodeURL(state), nil
}

// consumeState validates and burns a state token. Unknown or expired states
// fail with common.ErrStateExpired; the row is deleted either way so a token
// cannot be replayed.
func (s *FederationService) consumeState(ctx context.Context, state string) error {
	repo := s.repomanager.OAuthStates(s.db)

	row, err := repo.Find(ctx, state)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrStateExpired
		}
		return fmt.Errorf("error searching state: %w", err)
	}

	if err := repo.Delete(ctx, state); err != nil {
		return fmt.Errorf("error deleting state: %w", err)
	}

	if row.Expires.Before(time.Now()) {
		return common.ErrStateExpired
	}
	return nil
}

// fetchUserInfo asks the provider who the token belongs to.
func (s *FederationService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauth.Client(ctx, token)

	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed: status %d", resp.StatusCode)
	}

	info := &googleUserInfo{}
	if err := json.NewDecoder(resp.Body).Decode(info); err != nil {
		return nil, fmt.Errorf("error decoding userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, errors.New("userinfo response missing email")
	}
	return info, nil
}

// Callback completes the round trip: it burns the state, exchanges the code,
// resolves the provider identity to a local account by email (creating one on
// first login) and issues an access token. Provider-side failures surface as
// common.ErrFederationFailed.
func (s *FederationService) Callback(ctx context.Context, state, code string) (*AuthResult, error) {

	if err := s.consumeState(ctx, state); err != nil {
		return nil, err
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange: %v", common.ErrFederationFailed, err)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFederationFailed, err)
	}

	user, err := s.findOrCreateUser(ctx, info)
	if err != nil {
		return nil, err
	}

	accessToken, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &AuthResult{Token: accessToken, User: user}, nil
}

// findOrCreateUser maps a provider identity onto the local account with the
// same email, creating a passwordless account when none exists. The upsert in
// the repository makes concurrent first logins converge on one row.
func (s *FederationService) findOrCreateUser(ctx context.Context, info *googleUserInfo) (*models.User, error) {
	candidate := &models.User{
		ID:    uuid.NewString(),
		Email: normalizeEmail(info.Email),
		Name:  info.Name,
	}
	if candidate.Name == "" {
		candidate.Name = candidate.Email
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.FindOrCreateByEmail(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("error resolving federated user: %w", err)
	}
	return user, nil
}
