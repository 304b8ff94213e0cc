package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/opsdesk/core"
)

// Roles carried by the JWT. A queue's role is the queue name.
const (
	RoleAdmin      = "admin"
	RoleInventory  = "inventory"
	RoleOperations = "operations"
	RoleFleet      = "fleet"
)

var (
	Roles = []string{RoleAdmin, RoleInventory, RoleOperations, RoleFleet}

	contextTokenKey = "userToken"
	signingMethod   = middleware.AlgorithmHS256
)

// Claims represents the authorization claims transmitted via a JWT.
// Authentication itself happens upstream; only the role is trusted here.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

// newJWTConfig returns the JWT auth middleware config.
func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: signingMethod,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

func GetClaims(conf *core.Config, subject, role string) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   subject,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Role: role,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(signingMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

// IsRole reports whether role is a known role.
func IsRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// contextPrincipal returns the caller of the request; the zero Principal when unauthenticated.
func contextPrincipal(ctx echo.Context) core.Principal {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return core.Principal{}
	}
	return core.Principal{Subject: claims.Subject, Role: claims.Role}
}

// contextHasAnyRole reports whether the caller holds one of roles. Admins hold every role.
func contextHasAnyRole(ctx echo.Context, roles ...string) bool {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return false
	}
	if claims.Role == RoleAdmin {
		return true
	}
	for _, role := range roles {
		if role == claims.Role {
			return true
		}
	}
	return false
}
