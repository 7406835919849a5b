package handlers

import (
	"learnhub/internal/models"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v3"
)

type PolicyHandler struct {
	policyService *service.PolicyService
	middleware    *AuthMiddleware
}

func NewPolicyHandler(policyService *service.PolicyService, middleware *AuthMiddleware) *PolicyHandler {
	return &PolicyHandler{
		policyService: policyService,
		middleware:    middleware,
	}
}

func (h *PolicyHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/utilities")

	group.Get("/privacy-policy", h.PrivacyPolicy)
	group.Get("/terms-and-conditions", h.Terms)

	admin := app.Group("/api/utilities", h.middleware.RequireAuth, RequireRoles(models.RoleAdmin))
	admin.Post("/privacy-policy", h.PublishPrivacyPolicy)
	admin.Post("/terms-and-conditions", h.PublishTerms)
}

func (h *PolicyHandler) PrivacyPolicy(c fiber.Ctx) error {
	policy, err := h.policyService.PrivacyPolicy(c.Context())
	if err != nil {
		return notFoundOrServiceError(c, err, "No privacy policy published")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": policy})
}

func (h *PolicyHandler) Terms(c fiber.Ctx) error {
	terms, err := h.policyService.Terms(c.Context())
	if err != nil {
		return notFoundOrServiceError(c, err, "No terms published")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": terms})
}

func (h *PolicyHandler) PublishPrivacyPolicy(c fiber.Ctx) error {
	var req struct {
		Content string `json:"content" validate:"required"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	policy := &models.PrivacyPolicy{Content: req.Content}
	if err := h.policyService.PublishPrivacyPolicy(c.Context(), policy); err != nil {
		return serviceError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": policy})
}

func (h *PolicyHandler) PublishTerms(c fiber.Ctx) error {
	var req struct {
		Content string `json:"content" validate:"required"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	terms := &models.TermsAndConditions{Content: req.Content}
	if err := h.policyService.PublishTerms(c.Context(), terms); err != nil {
		return serviceError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": terms})
}
