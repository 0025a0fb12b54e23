package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  string
	}{
		{"valid", "alice", "secretpw", ""},
		{"minimum lengths", "abc", "xyz", ""},
		{"missing username", "", "secretpw", "username and password required"},
		{"missing password", "alice", "", "username and password required"},
		{"short username", "ab", "secretpw", "username must be at least 3 characters long"},
		{"short password", "alice", "pw", "password must be at least 3 characters long"},
		{"two multibyte characters", "éé", "secretpw", "username must be at least 3 characters long"},
		{"three multibyte characters", "éée", "日本", "password must be at least 3 characters long"},
		{"multibyte minimum lengths", "ééé", "日本語", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.username, tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateBlog(t *testing.T) {
	assert.NoError(t, ValidateBlog("T", "http://x"))
	assert.EqualError(t, ValidateBlog("", "http://x"), "title or url missing")
	assert.EqualError(t, ValidateBlog("T", ""), "title or url missing")
}
