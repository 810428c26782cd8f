package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrMissingClaims = errors.New("missing or invalid token claims")

type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"type":    "access",
		"exp":     expiresAt,
	}
	if employeeID != nil {
		claims["employee_id"] = *employeeID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// Actor is the authenticated caller carried by the request context.
type Actor struct {
	UserID     string
	EmployeeID *string
	Role       user.Role
}

// IsManager reports whether the actor may act on other employees' records.
func (a Actor) IsManager() bool {
	return a.Role == user.RoleManager || a.Role == user.RoleAdmin
}

// OwnsEmployee reports whether employeeID is the actor's own employee record.
func (a Actor) OwnsEmployee(employeeID string) bool {
	return a.EmployeeID != nil && *a.EmployeeID == employeeID
}

// ActorFromContext reads the verified token claims placed by jwtauth.Verifier.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, ErrMissingClaims
	}
	role, _ := claims["role"].(string)

	actor := Actor{UserID: userID, Role: user.Role(role)}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		actor.EmployeeID = &employeeID
	}
	return actor, nil
}

// NewActorContext attaches an unsigned token for actor to ctx, as jwtauth.Verifier would
// after verifying a real one. Used by background jobs and tests.
func NewActorContext(ctx context.Context, actor Actor) context.Context {
	builder := jwt.NewBuilder().
		Claim("user_id", actor.UserID).
		Claim("role", string(actor.Role)).
		Claim("type", "access")
	if actor.EmployeeID != nil {
		builder = builder.Claim("employee_id", *actor.EmployeeID)
	}
	token, err := builder.Build()
	return jwtauth.NewContext(ctx, token, err)
}
