package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/auth"
)

func TestJWTMiddleware(t *testing.T) {
	e := echo.New()
	manager := auth.NewJWTManager("secret", 0)

	token, err := manager.GenerateToken("user-1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := map[string]struct {
		header     string
		optional   bool
		expectCode int
		wantOwner  string
	}{
		"missing header": {
			expectCode: http.StatusUnauthorized,
		},
		"missing header optional": {
			optional:   true,
			expectCode: http.StatusOK,
		},
		"invalid header": {
			header:     "Basic token",
			expectCode: http.StatusUnauthorized,
		},
		"invalid token optional": {
			header:     "Bearer invalid",
			optional:   true,
			expectCode: http.StatusUnauthorized,
		},
		"invalid token": {
			header:     "Bearer invalid",
			expectCode: http.StatusUnauthorized,
		},
		"success": {
			header:     "Bearer " + token,
			expectCode: http.StatusOK,
			wantOwner:  "user-1",
		},
		"success optional": {
			header:     "Bearer " + token,
			optional:   true,
			expectCode: http.StatusOK,
			wantOwner:  "user-1",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mw := JWT(manager)
			if tt.optional {
				mw = OptionalJWT(manager)
			}

			executed := false
			err := mw(func(c echo.Context) error {
				executed = true
				if got := OwnerFromContext(c); got != tt.wantOwner {
					t.Fatalf("expected owner %q, got %q", tt.wantOwner, got)
				}
				return c.NoContent(http.StatusOK)
			})(c)
			if err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}

			if rec.Code != tt.expectCode {
				t.Fatalf("expected status %d, got %d", tt.expectCode, rec.Code)
			}
			if executed != (tt.expectCode == http.StatusOK) {
				t.Fatalf("unexpected next execution: %v", executed)
			}
		})
	}
}
