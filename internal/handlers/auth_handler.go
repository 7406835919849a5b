package handlers

import (
	"errors"
	"log"

	"learnhub/internal/config"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	registrationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registration_attempts_total",
			Help: "Total number of registration attempts",
		},
		[]string{"status", "role"},
	)

	loginDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_login_duration_seconds",
			Help:    "Time spent processing login requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	passwordResetRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_password_reset_requests_total",
			Help: "Total number of password reset requests",
		},
	)

	logoutAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_logout_attempts_total",
			Help: "Total number of logout attempts",
		},
	)
)

type AuthHandler struct {
	userService     *service.UserService
	jwtService      *service.JWTService
	sessionService  *service.SessionService
	passwordService *service.PasswordService
	middleware      *AuthMiddleware
	cfg             *config.Config
}

func NewAuthHandler(
	cfg *config.Config,
	userService *service.UserService,
	jwtService *service.JWTService,
	sessionService *service.SessionService,
	passwordService *service.PasswordService,
	middleware *AuthMiddleware,
) *AuthHandler {
	return &AuthHandler{
		userService:     userService,
		jwtService:      jwtService,
		sessionService:  sessionService,
		passwordService: passwordService,
		middleware:      middleware,
		cfg:             cfg,
	}
}

func (h *AuthHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", h.Register)
	authGroup.Post("/login", h.Login)
	authGroup.Post("/refresh", h.Refresh)
	authGroup.Post("/verify-token", h.VerifyToken)
	authGroup.Post("/logout", h.Logout, h.middleware.RequireAuth)
	authGroup.Post("/verify-email", h.VerifyEmail, h.middleware.RequireAuth)
	authGroup.Post("/resend-verification", h.ResendVerification, h.middleware.RequireAuth)

	if h.cfg.EnablePasswordReset {
		authGroup.Post("/password/forgot", h.ForgotPassword)
		authGroup.Post("/password/verify-otp", h.VerifyResetOTP)
		authGroup.Post("/password/reset", h.ResetPassword)
		authGroup.Post("/password/change", h.RequestPasswordChange, h.middleware.RequireAuth)
		authGroup.Post("/password/change/confirm", h.ConfirmPasswordChange, h.middleware.RequireAuth)
	}
}

func (h *AuthHandler) HealthCheck(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("LearnHub is healthy")
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req service.RegisterInput
	if ok, err := bindAndValidate(c, &req); !ok {
		registrationAttempts.WithLabelValues("failure", req.Role).Inc()
		return err
	}

	user, err := h.userService.Register(c.Context(), req)
	if err != nil {
		registrationAttempts.WithLabelValues("failure", req.Role).Inc()
		if errors.Is(err, service.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Email already registered",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	registrationAttempts.WithLabelValues("success", req.Role).Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User Created Successfully",
		"data": fiber.Map{
			"user": user,
		},
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	timer := prometheus.NewTimer(loginDuration.WithLabelValues("pending"))
	defer timer.ObserveDuration()

	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		loginAttempts.WithLabelValues("failure").Inc()
		return err
	}

	user, err := h.userService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		log.Printf("Error login with email: %s : %s", req.Email, err)
		switch {
		case errors.Is(err, service.ErrUserLocked):
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Account temporarily locked, try again later",
			})
		case errors.Is(err, service.ErrUserInactive):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Account is not active",
			})
		default:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
	}

	if h.cfg.AuthMethod == config.AuthMethodSession {
		session, err := h.sessionService.Create(c.Context(), user, c.Get("User-Agent"), c.IP())
		if err != nil {
			loginAttempts.WithLabelValues("failure").Inc()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Service Error",
			})
		}
		loginAttempts.WithLabelValues("success").Inc()
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "User Login Successfully",
			"data": fiber.Map{
				"token": session.Token,
				"user":  user,
			},
		})
	}

	pair, err := h.jwtService.GenerateTokenPair(user)
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		log.Printf("Error generating tokens for %s: %s", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}

	loginAttempts.WithLabelValues("success").Inc()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User Login Successfully",
		"data": fiber.Map{
			"access":  pair["access"],
			"refresh": pair["refresh"],
			"user":    user,
		},
	})
}

// Refresh exchanges a live refresh token for a new pair.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req struct {
		Refresh string `json:"refresh" validate:"required"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if h.middleware.redisRepo.IsTokenBlacklisted(c.Context(), req.Refresh) {
		return unauthorized(c, "Token has been revoked")
	}

	claims, err := h.jwtService.ParseToken(req.Refresh)
	if err != nil || claims.TokenType != service.TokenTypeRefresh {
		return unauthorized(c, "Invalid refresh token")
	}

	userID, err := bson.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return unauthorized(c, "Invalid refresh token")
	}
	user, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		return unauthorized(c, "Invalid refresh token")
	}

	// Rotate: the presented refresh token is retired with the swap.
	if err := h.middleware.redisRepo.BlacklistToken(c.Context(), req.Refresh, h.jwtService.RemainingTTL(claims)); err != nil {
		log.Printf("error blacklisting rotated refresh token: %s", err)
	}

	pair, err := h.jwtService.GenerateTokenPair(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"access":  pair["access"],
			"refresh": pair["refresh"],
		},
	})
}

// VerifyToken answers whether a presented access token is live, with its
// claims. Gateways use this to validate without sharing the secret.
func (h *AuthHandler) VerifyToken(c fiber.Ctx) error {
	var req struct {
		Token string `json:"token" validate:"required"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if h.middleware.redisRepo.IsTokenBlacklisted(c.Context(), req.Token) {
		return unauthorized(c, "Token has been revoked")
	}
	claims, err := h.jwtService.ParseToken(req.Token)
	if err != nil || claims.TokenType != service.TokenTypeAccess {
		return unauthorized(c, "Invalid or expired token")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"user_id": claims.UserID,
			"email":   claims.Email,
			"role":    claims.Role,
		},
	})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	logoutAttempts.Inc()
	token, _ := c.Locals(LocalToken).(string)

	if h.cfg.AuthMethod == config.AuthMethodSession {
		if err := h.sessionService.Destroy(c.Context(), token); err != nil {
			log.Printf("error destroying session: %s", err)
		}
	} else if claims, err := h.jwtService.ParseToken(token); err == nil {
		if err := h.middleware.redisRepo.BlacklistToken(c.Context(), token, h.jwtService.RemainingTTL(claims)); err != nil {
			log.Printf("error blacklisting token on logout: %s", err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) VerifyEmail(c fiber.Ctx) error {
	var req struct {
		OTP string `json:"otp" validate:"required"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}

	verified, err := h.userService.VerifyEmail(c.Context(), userID, req.OTP)
	if err != nil {
		log.Printf("error verifying email: %s", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	if !verified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired OTP",
		})
	}

	// Re-issue credentials so the client picks up the verified state without
	// another login.
	user, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	pair, err := h.jwtService.GenerateTokenPair(user)
	if err != nil {
		log.Printf("error generating tokens after verification: %s", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Email verified successfully",
		"data": fiber.Map{
			"access":  pair["access"],
			"refresh": pair["refresh"],
		},
	})
}

func (h *AuthHandler) ResendVerification(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}
	if err := h.userService.ResendVerification(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Verification code sent",
	})
}

// ForgotPassword always answers 200, known address or not.
func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	passwordResetRequests.Inc()
	if err := h.passwordService.RequestReset(c.Context(), req.Email); err != nil {
		log.Printf("error requesting password reset: %s", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "If the email exists, an OTP has been sent",
	})
}

func (h *AuthHandler) VerifyResetOTP(c fiber.Ctx) error {
	var req struct {
		Email string `json:"email" validate:"required,email"`
		OTP   string `json:"otp" validate:"required"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	verified, err := h.passwordService.VerifyResetOTP(c.Context(), req.Email, req.OTP)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	if !verified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired OTP",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "OTP verified, you may now reset the password",
	})
}

func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var req struct {
		Email       string `json:"email" validate:"required,email"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	done, err := h.passwordService.Reset(c.Context(), req.Email, req.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	if !done {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No verified OTP within the reset window",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Password reset successfully",
	})
}

func (h *AuthHandler) RequestPasswordChange(c fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"current_password" validate:"required"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}
	user, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}

	if err := h.passwordService.RequestChange(c.Context(), user, req.CurrentPassword); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return unauthorized(c, "Current password is incorrect")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Confirmation OTP sent",
	})
}

func (h *AuthHandler) ConfirmPasswordChange(c fiber.Ctx) error {
	var req struct {
		OTP         string `json:"otp" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}
	user, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}

	done, err := h.passwordService.ConfirmChange(c.Context(), user, req.OTP, req.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	if !done {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired OTP",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Password changed successfully",
	})
}
