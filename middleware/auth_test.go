package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parcel-tracking/constants"
	"parcel-tracking/database/dbtest"
	"parcel-tracking/models/user"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func claimsFor(username string, perms ...string) jwt.MapClaims {
	granted := make([]interface{}, 0, len(perms))
	for _, p := range perms {
		granted = append(granted, p)
	}
	return jwt.MapClaims{
		"uuid":        uuid.NewString(),
		"username":    username,
		"email":       username + "@example.com",
		"permissions": granted,
		"exp":         time.Now().Add(time.Hour).Unix(),
	}
}

func signHS(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newApp(t *testing.T, guard fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/whoami", guard, func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(u.Username)
	})
	return app
}

func get(t *testing.T, app *fiber.App, header, cookie string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "access", Value: cookie})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	return resp.StatusCode, string(buf[:n])
}

func TestOptionalAuthentication(t *testing.T) {
	db := dbtest.Open(t)
	auth := NewAuth(db, NewVerifier(testSecret, ""))
	app := newApp(t, auth.OptionalAuthentication())

	status, body := get(t, app, "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "anonymous", body)

	status, body = get(t, app, "Bearer "+signHS(t, claimsFor("alice")), "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "alice", body)

	status, body = get(t, app, "", signHS(t, claimsFor("bob")))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "bob", body)

	status, _ = get(t, app, "Bearer not-a-token", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = get(t, app, "Token abc", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestTokenMirrorsUser(t *testing.T) {
	db := dbtest.Open(t)
	auth := NewAuth(db, NewVerifier(testSecret, ""))
	app := newApp(t, auth.OptionalAuthentication())

	claims := claimsFor("carol", constants.PermOrganizationAdminFull)
	token := signHS(t, claims)
	for i := 0; i < 2; i++ {
		status, _ := get(t, app, "Bearer "+token, "")
		require.Equal(t, fiber.StatusOK, status)
	}

	var users []user.User
	require.NoError(t, db.Where("uuid = ?", claims["uuid"]).Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "carol", users[0].Username)
	assert.True(t, users[0].Permissions.Has(constants.PermOrganizationAdminFull))

	missingUsername := claimsFor("")
	status, _ := get(t, app, "Bearer "+signHS(t, missingUsername), "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestExpiredAndForeignTokensRejected(t *testing.T) {
	db := dbtest.Open(t)
	auth := NewAuth(db, NewVerifier(testSecret, ""))
	app := newApp(t, auth.OptionalAuthentication())

	expired := claimsFor("dave")
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	status, _ := get(t, app, "Bearer "+signHS(t, expired), "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsFor("eve")).SignedString([]byte("other"))
	require.NoError(t, err)
	status, _ = get(t, app, "Bearer "+foreign, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRequirePermissions(t *testing.T) {
	db := dbtest.Open(t)
	auth := NewAuth(db, NewVerifier(testSecret, ""))

	app := newApp(t, auth.RequireAuthentication())
	status, _ := get(t, app, "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	status, body := get(t, app, "Bearer "+signHS(t, claimsFor("frank")), "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "frank", body)

	admin := newApp(t, auth.RequirePermissions(constants.OrganizationAdminPermissions...))
	status, _ = get(t, admin, "Bearer "+signHS(t, claimsFor("grace")), "")
	assert.Equal(t, fiber.StatusForbidden, status)
	status, _ = get(t, admin, "Bearer "+signHS(t, claimsFor("heidi", constants.PermSuperAdminFull)), "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequirePermissionsAfterOptional(t *testing.T) {
	db := dbtest.Open(t)
	auth := NewAuth(db, NewVerifier(testSecret, ""))
	app := fiber.New()
	app.Use(auth.OptionalAuthentication())
	app.Get("/whoami", auth.RequireAuthentication(), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Username)
	})

	status, body := get(t, app, "Bearer "+signHS(t, claimsFor("ivan")), "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ivan", body)

	status, _ = get(t, app, "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRS256WithFetchedKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_ = json.NewEncoder(w).Encode(map[string]string{"key": string(pemKey)})
	}))
	defer srv.Close()

	db := dbtest.Open(t)
	auth := NewAuth(db, NewVerifier("", srv.URL))
	app := newApp(t, auth.OptionalAuthentication())

	for _, name := range []string{"judy", "mallory"} {
		token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claimsFor(name)).SignedString(key)
		require.NoError(t, err)
		status, body := get(t, app, "Bearer "+token, "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, name, body)
	}
	assert.Equal(t, 1, fetches)

	// HS256 is refused when no secret is configured.
	status, _ := get(t, app, "Bearer "+signHS(t, claimsFor("oscar")), "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
