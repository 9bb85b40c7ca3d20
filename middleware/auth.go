package middleware

import (
	"errors"

	"parcel-tracking/constants"
	"parcel-tracking/logger"
	"parcel-tracking/models/user"
	"parcel-tracking/types"
	"parcel-tracking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	localClaims      = "user"
	localPermissions = "permissions"
	localUser        = "currentUser"
)

// Auth resolves access tokens into local users. Tokens are verified, never
// issued, here.
type Auth struct {
	db       *gorm.DB
	verifier *Verifier
}

func NewAuth(db *gorm.DB, verifier *Verifier) *Auth {
	return &Auth{db: db, verifier: verifier}
}

func deny(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(types.ApiResponse{Message: message, Status: status})
}

// authenticate verifies the token and stores claims, permissions and the
// mirrored user on the context. On failure it returns the message to send.
func (a *Auth) authenticate(c *fiber.Ctx, token string) (bool, string) {
	claims, err := a.verifier.VerifyJWT(token)
	if err != nil {
		logger.Warning("JWT verification failed: " + err.Error())
		return false, "Invalid or expired token"
	}

	u, err := utils.EnsureUserFromClaims(a.db.WithContext(c.UserContext()), claims)
	if err != nil {
		logger.Warning("Rejected token claims: " + err.Error())
		return false, "Session expired. Login again."
	}

	c.Locals(localClaims, claims)
	c.Locals(localPermissions, extractUserPermissionsFromClaims(claims))
	c.Locals(localUser, u)
	return true, ""
}

// IsAuthenticated is a middleware that checks for a valid JWT token carrying
// any of requiredPermissions. constants.PermAny accepts every valid token.
func (a *Auth) IsAuthenticated(requiredPermissions []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			token, err := extractToken(c)
			if err != nil {
				return deny(c, fiber.StatusUnauthorized, "Authentication credentials were not provided.")
			}
			if ok, message := a.authenticate(c, token); !ok {
				return deny(c, fiber.StatusUnauthorized, message)
			}
		}

		if !hasAnyPermission(GetUserPermissions(c), requiredPermissions) {
			return deny(c, fiber.StatusForbidden, "Insufficient permissions")
		}
		return c.Next()
	}
}

// OptionalAuthentication lets anonymous requests through. A token that is
// present but invalid is still rejected.
func (a *Auth) OptionalAuthentication() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := extractToken(c)
		if errors.Is(err, errTokenMissing) {
			return c.Next()
		}
		if err != nil {
			return deny(c, fiber.StatusUnauthorized, "Invalid authorization header format")
		}
		if ok, message := a.authenticate(c, token); !ok {
			return deny(c, fiber.StatusUnauthorized, message)
		}
		return c.Next()
	}
}

// RequirePermissions is a helper function that creates a middleware with specific permissions
func (a *Auth) RequirePermissions(permissions ...string) fiber.Handler {
	return a.IsAuthenticated(permissions)
}

// RequireAuthentication only requires valid authentication without specific permissions
func (a *Auth) RequireAuthentication() fiber.Handler {
	return a.IsAuthenticated([]string{constants.PermAny})
}

func hasAnyPermission(granted map[string]bool, required []string) bool {
	for _, perm := range required {
		if perm == constants.PermAny || granted[perm] {
			return true
		}
	}
	return false
}

// CurrentUser returns the authenticated caller, or nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *user.User {
	u, _ := c.Locals(localUser).(*user.User)
	return u
}

// GetUserPermissions returns all user permissions from context
func GetUserPermissions(c *fiber.Ctx) map[string]bool {
	userPermissions, ok := c.Locals(localPermissions).(map[string]bool)
	if !ok {
		userClaims, ok := c.Locals(localClaims).(jwt.MapClaims)
		if !ok {
			return make(map[string]bool)
		}
		return extractUserPermissionsFromClaims(userClaims)
	}
	return userPermissions
}

func extractUserPermissionsFromClaims(claims jwt.MapClaims) map[string]bool {
	permissionSet := make(map[string]bool)
	for _, perm := range utils.PermissionsFromClaims(claims) {
		permissionSet[perm] = true
	}
	return permissionSet
}
