package handlers

import (
	"errors"
	"log"

	"learnhub/internal/config"
	"learnhub/internal/models"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	userService    *service.UserService
	middleware     *AuthMiddleware
	cfg            *config.Config
}

func NewProfileHandler(cfg *config.Config, profileService *service.ProfileService, userService *service.UserService, middleware *AuthMiddleware) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		userService:    userService,
		middleware:     middleware,
		cfg:            cfg,
	}
}

func (h *ProfileHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/profile", h.middleware.RequireAuth)

	group.Get("/me", h.Me)
	if h.cfg.EnableProfileEdit {
		group.Put("/me", h.UpdateMe)
		group.Put("/account", h.UpdateAccount)
	}
	group.Delete("/me", h.DeleteAccount)

	adminGroup := app.Group("/api/admins", h.middleware.RequireAuth, RequireRoles(models.RoleAdmin))
	adminGroup.Get("/", h.ListAdmins)
	adminGroup.Get("/:adminId", h.GetAdmin)
	adminGroup.Delete("/:adminId", h.DeleteAdmin)
}

func (h *ProfileHandler) Me(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}

	profile, err := h.profileService.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": profile,
	})
}

func (h *ProfileHandler) UpdateMe(c fiber.Ctx) error {
	var req service.UpdateProfileInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}

	profile, err := h.profileService.Update(c.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Profile updated successfully",
		"data":    profile,
	})
}

// UpdateAccount edits the account-level fields (names, phone) as opposed to
// the role profile.
func (h *ProfileHandler) UpdateAccount(c fiber.Ctx) error {
	var req service.UpdateUserInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}

	user, err := h.userService.UpdateUser(c.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Account updated successfully",
		"data":    user,
	})
}

func (h *ProfileHandler) DeleteAccount(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}

	if err := h.userService.DeleteUser(c.Context(), userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Printf("error deleting account: %s", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Account deleted",
	})
}

func (h *ProfileHandler) ListAdmins(c fiber.Ctx) error {
	page := fiber.Query(c, "page", 1)
	limit := fiber.Query(c, "limit", 20)

	admins, err := h.profileService.ListAdmins(c.Context(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": admins,
	})
}

func (h *ProfileHandler) GetAdmin(c fiber.Ctx) error {
	admin, err := h.profileService.GetAdmin(c.Context(), c.Params("adminId"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Admin not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": admin,
	})
}

func (h *ProfileHandler) DeleteAdmin(c fiber.Ctx) error {
	if err := h.profileService.DeleteAdmin(c.Context(), c.Params("adminId")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Admin not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Admin removed",
	})
}
