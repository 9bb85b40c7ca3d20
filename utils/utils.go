package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"parcel-tracking/models/user"
	"parcel-tracking/types"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// MaxPageSize caps page_size on every paginated list.
const MaxPageSize = 100

var ErrUserNotFound = errors.New("user not found")

// GetUserByUUID retrieves a user by their UUID from the database
func GetUserByUUID(db *gorm.DB, id string) (*user.User, error) {
	if id == "" {
		return nil, errors.New("UUID cannot be empty")
	}

	var userModel user.User
	if err := db.Where("uuid = ?", id).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &userModel, nil
}

// EnsureUserFromClaims returns the local mirror of the token subject,
// creating it on first sight and refreshing profile fields afterwards.
func EnsureUserFromClaims(db *gorm.DB, claims jwt.MapClaims) (*user.User, error) {
	rawID, _ := claims["uuid"].(string)
	if _, err := uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("invalid uuid claim %q", rawID)
	}
	username, _ := claims["username"].(string)
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("username claim missing")
	}

	profile := user.User{
		Username:    username,
		FirstName:   stringClaim(claims, "first_name"),
		LastName:    stringClaim(claims, "last_name"),
		Permissions: PermissionsFromClaims(claims),
	}
	if email := stringClaim(claims, "email"); email != "" {
		profile.Email = &email
	}

	var u user.User
	res := db.Where("uuid = ?", rawID).Limit(1).Find(&u)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to look up user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		profile.Uuid = rawID
		err := db.Create(&profile).Error
		if err == nil {
			return &profile, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		// Lost a race with a concurrent first request for the same subject.
		if err := db.Where("uuid = ?", rawID).First(&u).Error; err != nil {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
	}

	u.Username = profile.Username
	u.Email = profile.Email
	u.FirstName = profile.FirstName
	u.LastName = profile.LastName
	u.Permissions = profile.Permissions
	if err := db.Save(&u).Error; err != nil {
		return nil, fmt.Errorf("failed to sync user: %w", err)
	}
	return &u, nil
}

// PermissionsFromClaims reads the "permissions" claim as a string slice.
func PermissionsFromClaims(claims jwt.MapClaims) user.StringSlice {
	raw, ok := claims["permissions"].([]interface{})
	if !ok {
		return user.StringSlice{}
	}
	perms := make(user.StringSlice, 0, len(raw))
	for _, p := range raw {
		if perm, ok := p.(string); ok {
			perms = append(perms, perm)
		}
	}
	return perms
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

// OrderBy turns a DRF style ordering parameter ("-created_at") into an ORDER
// BY clause. Unknown fields fall back to the default. The id column breaks
// ties in the same direction.
func OrderBy(raw, fallback string, allowed ...string) string {
	field := strings.TrimSpace(raw)
	if !isAllowed(strings.TrimPrefix(field, "-"), allowed) {
		field = fallback
	}
	dir := "ASC"
	if strings.HasPrefix(field, "-") {
		dir = "DESC"
		field = field[1:]
	}
	if field == "id" {
		return "id " + dir
	}
	return field + " " + dir + ", id " + dir
}

func isAllowed(field string, allowed []string) bool {
	for _, a := range allowed {
		if a == field {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD query value as a UTC date.
func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", raw, time.UTC)
}

// DayWindow returns the first and last instant of the day containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	day := now.With(t)
	return day.BeginningOfDay(), day.EndOfDay()
}

// Paginate normalizes page/page_size into offset and limit. A page size of
// zero means "no pagination" and yields a limit of -1.
func Paginate(page, pageSize int) (offset, limit int) {
	if pageSize <= 0 {
		return 0, -1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize, pageSize
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// ContainsPattern builds a lowercase LIKE pattern for case-insensitive
// substring search. Wildcards in term match literally, so the pattern must
// be used with ESCAPE '\'.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// sanitizeRequestBody sanitizes request body for file uploads and large content
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})

		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}

			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}

		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 1000 && (strings.Contains(body, "data:image/") ||
		strings.Contains(body, "base64") ||
		isLikelyBase64(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}

	return body
}

// isLikelyBase64 detects if content looks like base64
func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}

	return float64(base64Chars)/float64(len(content)) > 0.8
}

// redactHeaders drops bearer tokens and cookies from a raw header block.
func redactHeaders(raw []byte) string {
	lines := strings.Split(string(raw), "\r\n")
	for i, line := range lines {
		name, _, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "authorization", "cookie":
			lines[i] = name + ": [REDACTED]"
		}
	}
	return strings.Join(lines, "\r\n")
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging.
// Credentials are redacted from the request headers.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		RequestID:       c.GetRespHeader(fiber.HeaderXRequestID),
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  redactHeaders(c.Request().Header.Header()),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now().UTC(),
	}
}
