package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clearcause/internal/domain"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)
	token, exp, err := issuer.Issue(&domain.User{ID: "user-1", Role: domain.UserRoleCharity})
	if err != nil {
		t.Fatalf("Issue error = %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry %v is in the past", exp)
	}
	actor, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify error = %v", err)
	}
	if actor.UserID != "user-1" || actor.Role != domain.UserRoleCharity {
		t.Fatalf("actor = %+v", actor)
	}

	if _, err := NewJWTIssuer("other-secret", time.Hour).Verify(token); err == nil {
		t.Fatal("token verified with the wrong secret")
	}

	expired := NewJWTIssuer("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, _ := expired.Issue(&domain.User{ID: "user-1", Role: domain.UserRoleDonor})
	if _, err := issuer.Verify(old); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestAuthMiddleware(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)
	donorToken, _, _ := issuer.Issue(&domain.User{ID: "donor-1", Role: domain.UserRoleDonor})
	adminToken, _, _ := issuer.Issue(&domain.User{ID: "admin-1", Role: domain.UserRoleAdmin})

	var seen domain.Actor
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		chain  http.Handler
		header string
		status int
		actor  string
	}{
		{"required missing", AuthJWT(issuer)(final), "", http.StatusUnauthorized, ""},
		{"required bad scheme", AuthJWT(issuer)(final), "Basic abc", http.StatusUnauthorized, ""},
		{"required garbage", AuthJWT(issuer)(final), "Bearer not.a.token", http.StatusUnauthorized, ""},
		{"required ok", AuthJWT(issuer)(final), "Bearer " + donorToken, http.StatusOK, "donor-1"},
		{"optional anonymous", OptionalAuth(issuer)(final), "", http.StatusOK, ""},
		{"optional with token", OptionalAuth(issuer)(final), "Bearer " + donorToken, http.StatusOK, "donor-1"},
		{"admin route as donor", AuthJWT(issuer)(RequireRole(domain.UserRoleAdmin)(final)), "Bearer " + donorToken, http.StatusForbidden, ""},
		{"admin route as admin", AuthJWT(issuer)(RequireRole(domain.UserRoleAdmin)(final)), "Bearer " + adminToken, http.StatusOK, "admin-1"},
		{"role without auth", RequireRole(domain.UserRoleDonor)(final), "", http.StatusUnauthorized, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seen = domain.Actor{}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			tc.chain.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if seen.UserID != tc.actor {
				t.Fatalf("actor = %q, want %q", seen.UserID, tc.actor)
			}
			if rec.Code >= 400 {
				var body struct {
					Success bool `json:"success"`
					Error   struct {
						Code string `json:"code"`
					} `json:"error"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Success || body.Error.Code == "" {
					t.Fatalf("error body = %s", rec.Body.String())
				}
			}
		})
	}
}

type accountMap map[string]*domain.User

func (m accountMap) GetByID(_ context.Context, id string) (*domain.User, error) {
	if id == "broken" {
		return nil, errors.New("connection reset")
	}
	u, ok := m[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func TestAuthChecksStoredAccount(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour).CheckAccounts(accountMap{
		"donor-1":    {ID: "donor-1", Role: domain.UserRoleDonor, IsActive: true},
		"disabled-1": {ID: "disabled-1", Role: domain.UserRoleAdmin, IsActive: false},
		"demoted-1":  {ID: "demoted-1", Role: domain.UserRoleDonor, IsActive: true},
	})

	var seen domain.Actor
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	adminOnly := AuthJWT(issuer)(RequireRole(domain.UserRoleAdmin)(final))

	tests := []struct {
		name   string
		chain  http.Handler
		user   domain.User
		status int
		role   domain.UserRole
	}{
		{"active account", AuthJWT(issuer)(final), domain.User{ID: "donor-1", Role: domain.UserRoleDonor}, http.StatusOK, domain.UserRoleDonor},
		{"disabled account", AuthJWT(issuer)(final), domain.User{ID: "disabled-1", Role: domain.UserRoleAdmin}, http.StatusForbidden, ""},
		{"disabled on public route", OptionalAuth(issuer)(final), domain.User{ID: "disabled-1", Role: domain.UserRoleAdmin}, http.StatusForbidden, ""},
		{"deleted account", AuthJWT(issuer)(final), domain.User{ID: "gone-1", Role: domain.UserRoleDonor}, http.StatusUnauthorized, ""},
		{"stale admin role", adminOnly, domain.User{ID: "demoted-1", Role: domain.UserRoleAdmin}, http.StatusForbidden, ""},
		{"lookup failure", AuthJWT(issuer)(final), domain.User{ID: "broken", Role: domain.UserRoleDonor}, http.StatusInternalServerError, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seen = domain.Actor{}
			token, _, err := issuer.Issue(&tc.user)
			if err != nil {
				t.Fatalf("Issue error = %v", err)
			}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			tc.chain.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.status, rec.Body.String())
			}
			if seen.Role != tc.role {
				t.Fatalf("role = %q, want %q", seen.Role, tc.role)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got != "abc-123" || rec.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("request id = %q", got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(got) != 36 || rec.Header().Get(RequestIDHeader) != got {
		t.Fatalf("generated id = %q", got)
	}
}
