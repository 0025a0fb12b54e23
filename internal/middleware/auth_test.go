package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bloglist/internal/models"
	"bloglist/internal/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

type stubFinder struct {
	users map[string]*models.UserSummary
	err   error
	calls int
}

func (f *stubFinder) FindSummary(_ context.Context, id string) (*models.UserSummary, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func TestTokenExtractor(t *testing.T) {
	app := fiber.New()
	app.Use(TokenExtractor())
	app.Get("/", func(c *fiber.Ctx) error {
		raw, ok := c.Locals(TokenLocal).(string)
		return c.JSON(fiber.Map{"token": raw, "present": ok})
	})

	tests := []struct {
		name        string
		header      string
		wantToken   string
		wantPresent bool
	}{
		{"no header", "", "", false},
		{"canonical bearer", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"lowercase bearer", "bearer abc", "abc", true},
		{"mixed case bearer", "BeArEr abc", "abc", true},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", false},
		{"bearer without space", "Bearerabc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			var body struct {
				Token   string `json:"token"`
				Present bool   `json:"present"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantToken, body.Token)
			assert.Equal(t, tt.wantPresent, body.Present)
		})
	}
}

func TestUserExtractor(t *testing.T) {
	tokens := token.NewService(testSecret)
	alice := &models.UserSummary{ID: "user-1", Username: "alice", Name: "Alice"}
	finder := &stubFinder{users: map[string]*models.UserSummary{alice.ID: alice}}

	app := fiber.New()
	app.Use(TokenExtractor())
	app.Get("/private", UserExtractor(tokens, finder), func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		uid, _ := c.UserContext().Value(UserIDKey).(string)
		return c.JSON(fiber.Map{"username": user.Username, "ctx_user": uid})
	})

	valid, err := tokens.Issue(alice.ID, alice.Username)
	require.NoError(t, err)
	ghost, err := tokens.Issue("user-404", "ghost")
	require.NoError(t, err)
	forged, err := token.NewService("some-other-secret-value-entirely").Issue(alice.ID, alice.Username)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"authenticated", "Bearer " + valid, http.StatusOK, ""},
		{"no header", "", http.StatusUnauthorized, "token missing"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "token missing"},
		{"wrong scheme", "Token " + valid, http.StatusUnauthorized, "token missing"},
		{"malformed", "Bearer malformed.token.here", http.StatusUnauthorized, "token invalid"},
		{"forged signature", "Bearer " + forged, http.StatusUnauthorized, "token invalid"},
		{"deleted user", "Bearer " + ghost, http.StatusUnauthorized, "user not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
				return
			}
			assert.Equal(t, "alice", body["username"])
			assert.Equal(t, alice.ID, body["ctx_user"])
		})
	}
}

func TestUserExtractor_LookupFailure(t *testing.T) {
	tokens := token.NewService(testSecret)
	finder := &stubFinder{err: errors.New("connection reset")}

	app := fiber.New()
	app.Use(TokenExtractor())
	app.Get("/private", UserExtractor(tokens, finder), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	signed, err := tokens.Issue("user-1", "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 1, finder.calls)
}
