package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clearcause/internal/domain"
)

const tokenIssuer = "clearcause"

// Claims are the access token claims. Subject carries the user id.
type Claims struct {
	Role domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AccountLookup loads the account behind a token subject.
type AccountLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// JWTIssuer signs and verifies HS256 access tokens.
type JWTIssuer struct {
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	accounts AccountLookup
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// CheckAccounts makes the auth middleware load the account on every request.
// Disabled accounts are refused and the stored role replaces the token's.
func (j *JWTIssuer) CheckAccounts(accounts AccountLookup) *JWTIssuer {
	j.accounts = accounts
	return j
}

// Issue signs a token for user and returns it with its expiry.
func (j *JWTIssuer) Issue(user *domain.User) (string, time.Time, error) {
	now := j.now().UTC()
	exp := now.Add(j.ttl)
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses token and returns the actor it names.
func (j *JWTIssuer) Verify(token string) (domain.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return domain.Actor{}, err
	}
	if strings.TrimSpace(claims.Subject) == "" || !claims.Role.Valid() {
		return domain.Actor{}, errors.New("token without subject or role")
	}
	return domain.Actor{UserID: claims.Subject, Role: claims.Role}, nil
}

type actorKey struct{}

// ActorFromContext returns the authenticated actor, or the zero Actor.
func ActorFromContext(ctx context.Context) domain.Actor {
	if v, ok := ctx.Value(actorKey{}).(domain.Actor); ok {
		return v
	}
	return domain.Actor{}
}

// ContextWithActor stores actor in ctx.
func ContextWithActor(ctx context.Context, actor domain.Actor) context.Context {
	if actor.Anonymous() {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, actor)
}

// AuthJWT rejects requests without a valid bearer token.
func AuthJWT(issuer *JWTIssuer) func(http.Handler) http.Handler {
	return authenticate(issuer, true)
}

// OptionalAuth attaches the actor when a valid token is present and lets
// anonymous requests through. A malformed or expired token is still rejected.
func OptionalAuth(issuer *JWTIssuer) func(http.Handler) http.Handler {
	return authenticate(issuer, false)
}

func authenticate(issuer *JWTIssuer, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				if required {
					writeError(w, domain.Unauthorized("missing authorization"))
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			token, ok := bearerToken(header)
			if !ok {
				writeError(w, domain.Unauthorized("invalid authorization header"))
				return
			}
			actor, err := issuer.Verify(token)
			if err != nil {
				writeError(w, domain.Unauthorized("invalid or expired token"))
				return
			}
			if actor, err = issuer.current(r.Context(), actor); err != nil {
				writeError(w, domain.AsError(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
		})
	}
}

// current reconciles a verified actor with the stored account.
func (j *JWTIssuer) current(ctx context.Context, actor domain.Actor) (domain.Actor, error) {
	if j.accounts == nil {
		return actor, nil
	}
	user, err := j.accounts.GetByID(ctx, actor.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Actor{}, domain.Unauthorized("account no longer exists")
	}
	if err != nil {
		return domain.Actor{}, domain.Internal(fmt.Errorf("load account: %w", err))
	}
	if !user.IsActive {
		return domain.Actor{}, domain.Forbidden("account is disabled")
	}
	actor.Role = user.Role
	return actor, nil
}

// RequireRole lets through actors holding one of roles. It must run after AuthJWT.
func RequireRole(roles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFromContext(r.Context())
			if actor.Anonymous() {
				writeError(w, domain.Unauthorized("authentication required"))
				return
			}
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, domain.Forbidden("your role cannot access this resource"))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
