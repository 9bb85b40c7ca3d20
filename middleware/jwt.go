package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// publicKeyTTL bounds how long a fetched signing key is trusted before it is
// fetched again.
const publicKeyTTL = 10 * time.Minute

var errTokenMissing = errors.New("authorization token missing")

// Verifier checks access tokens issued elsewhere. HS256 tokens are checked
// against a shared secret, RS256 tokens against a public key served at
// publicKeyURL.
type Verifier struct {
	secret       []byte
	publicKeyURL string
	httpClient   *http.Client

	mu        sync.Mutex
	key       *rsa.PublicKey
	fetchedAt time.Time
}

func NewVerifier(secret, publicKeyURL string) *Verifier {
	return &Verifier{
		secret:       []byte(secret),
		publicKeyURL: publicKeyURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchPublicKey fetches the public key from the given URL. The response is a
// JSON object whose "key" field holds a PEM encoded PKIX key.
func (v *Verifier) FetchPublicKey(url string) (*rsa.PublicKey, error) {
	resp, err := v.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public key: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	keyResponse := struct {
		Key string `json:"key"`
	}{}
	if err := json.Unmarshal(body, &keyResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal public key response: %w", err)
	}

	block, _ := pem.Decode([]byte(keyResponse.Key))
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, fmt.Errorf("failed to decode PEM block containing public key")
	}

	pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaPubKey, ok := pubKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA public key")
	}
	return rsaPubKey, nil
}

func (v *Verifier) publicKey() (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.key != nil && time.Since(v.fetchedAt) < publicKeyTTL {
		return v.key, nil
	}
	key, err := v.FetchPublicKey(v.publicKeyURL)
	if err != nil {
		return nil, err
	}
	v.key = key
	v.fetchedAt = time.Now()
	return key, nil
}

func (v *Verifier) keyFor(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if len(v.secret) == 0 {
			return nil, fmt.Errorf("HMAC tokens are not accepted")
		}
		return v.secret, nil
	case *jwt.SigningMethodRSA:
		if v.publicKeyURL == "" {
			return nil, fmt.Errorf("RSA tokens are not accepted")
		}
		return v.publicKey()
	default:
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
}

// VerifyJWT verifies a token and returns its claims.
func (v *Verifier) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, v.keyFor, jwt.WithValidMethods([]string{"HS256", "RS256"}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

// extractToken reads a bearer token from the Authorization header, falling
// back to the "access" cookie.
func extractToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if token := c.Cookies("access"); token != "" {
			return token, nil
		}
		return "", errTokenMissing
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", errors.New("invalid authorization header format")
	}
	return tokenParts[1], nil
}
