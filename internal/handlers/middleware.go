package handlers

import (
	"log"
	"strings"

	"learnhub/internal/config"
	"learnhub/internal/repository"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Locals keys populated by RequireAuth.
const (
	LocalUserID = "userID"
	LocalEmail  = "userEmail"
	LocalRole   = "userRole"
	LocalToken  = "authToken"
)

// AuthMiddleware authenticates requests with either signed JWTs or opaque
// Redis-backed sessions, depending on the configured auth method.
type AuthMiddleware struct {
	jwtService     *service.JWTService
	sessionService *service.SessionService
	userService    *service.UserService
	redisRepo      *repository.RedisRepository
	authMethod     string
}

func NewAuthMiddleware(cfg *config.Config, jwtService *service.JWTService, sessionService *service.SessionService, userService *service.UserService, redisRepo *repository.RedisRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:     jwtService,
		sessionService: sessionService,
		userService:    userService,
		redisRepo:      redisRepo,
		authMethod:     cfg.AuthMethod,
	}
}

func extractToken(c fiber.Ctx) string {
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return auth[7:]
	}
	return ""
}

func unauthorized(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msg,
	})
}

// RequireAuth rejects the request unless a live credential is presented.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	token := extractToken(c)
	if token == "" {
		return unauthorized(c, "No token provided")
	}

	if m.authMethod == config.AuthMethodSession {
		session, err := m.sessionService.Get(c.Context(), token)
		if err != nil {
			return unauthorized(c, "Invalid or expired session")
		}
		userID, err := bson.ObjectIDFromHex(session.UserID)
		if err != nil {
			return unauthorized(c, "Invalid session")
		}
		user, err := m.userService.GetByID(c.Context(), userID)
		if err != nil {
			return unauthorized(c, "Invalid session")
		}
		c.Locals(LocalUserID, session.UserID)
		c.Locals(LocalEmail, user.Email)
		c.Locals(LocalRole, user.Role)
		c.Locals(LocalToken, token)
		return c.Next()
	}

	if m.redisRepo.IsTokenBlacklisted(c.Context(), token) {
		return unauthorized(c, "Token has been revoked")
	}

	claims, err := m.jwtService.ParseToken(token)
	if err != nil {
		log.Printf("error parsing token: %s", err)
		return unauthorized(c, "Invalid or expired token")
	}
	if claims.TokenType != service.TokenTypeAccess {
		return unauthorized(c, "Access token required")
	}

	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalEmail, claims.Email)
	c.Locals(LocalRole, claims.Role)
	c.Locals(LocalToken, token)
	return c.Next()
}

// RequireRoles gates a route to the given roles. Must run after RequireAuth.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}
		return c.Next()
	}
}

// currentUserID reads the authenticated user's id set by RequireAuth.
func currentUserID(c fiber.Ctx) (bson.ObjectID, error) {
	raw, _ := c.Locals(LocalUserID).(string)
	return bson.ObjectIDFromHex(raw)
}
