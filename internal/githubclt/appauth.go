package githubclt

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"
)

// appJWTLifetime is the validity of the JWT used to request installation
// tokens, GitHub accepts at most 10min.
const appJWTLifetime = 9 * time.Minute

// AppTokenSource creates GitHub App installation access tokens.
// Tokens are requested with a JWT signed by the app's private key.
// Use it via oauth2.ReuseTokenSource to only refresh expired tokens.
type AppTokenSource struct {
	appID          int64
	installationID int64
	privateKey     *rsa.PrivateKey
	apiURL         string
	httpClient     *http.Client
	now            func() time.Time
}

// NewAppTokenSource returns a token source for the installation of a GitHub
// App. privateKeyPEM is the PEM encoded RSA private key of the app.
// apiURL can be empty to use the public GitHub API.
func NewAppTokenSource(appID, installationID int64, privateKeyPEM []byte, apiURL string) (*AppTokenSource, error) {
	if appID <= 0 {
		return nil, fmt.Errorf("invalid app id: %d", appID)
	}

	if installationID <= 0 {
		return nil, fmt.Errorf("invalid installation id: %d", installationID)
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parsing private key failed: %w", err)
	}

	return &AppTokenSource{
		appID:          appID,
		installationID: installationID,
		privateKey:     key,
		apiURL:         apiURL,
		httpClient:     &http.Client{Timeout: DefaultHTTPClientTimeout},
		now:            time.Now,
	}, nil
}

func (s *AppTokenSource) signedJWT() (string, error) {
	now := s.now()

	claims := jwt.RegisteredClaims{
		// backdated to allow for clock drift
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(appJWTLifetime)),
		Issuer:    strconv.FormatInt(s.appID, 10),
	}

	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
}

// Token requests a new installation access token.
func (s *AppTokenSource) Token() (*oauth2.Token, error) {
	signed, err := s.signedJWT()
	if err != nil {
		return nil, fmt.Errorf("signing jwt failed: %w", err)
	}

	httpClient := oauth2.NewClient(
		context.WithValue(context.Background(), oauth2.HTTPClient, s.httpClient),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: signed, TokenType: "Bearer"}),
	)

	clt := github.NewClient(httpClient)
	if s.apiURL != "" {
		u, err := parseBaseURL(s.apiURL)
		if err != nil {
			return nil, err
		}

		clt.BaseURL = u
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultHTTPClientTimeout)
	defer cancel()

	token, _, err := clt.Apps.CreateInstallationToken(ctx, s.installationID, nil)
	if err != nil {
		return nil, fmt.Errorf("creating installation token failed: %w", err)
	}

	return &oauth2.Token{
		AccessToken: token.GetToken(),
		TokenType:   "token",
		Expiry:      token.GetExpiresAt().Time,
	}, nil
}
