package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kretovds/company-registry-bot/internal/repositories"
)

// CompanyHandler exposes the read-only ops view of the registry.
type CompanyHandler struct {
	companyRepo repositories.CompanyRepo
}

func NewCompanyHandler(repo repositories.CompanyRepo) *CompanyHandler {
	return &CompanyHandler{companyRepo: repo}
}

func (h *CompanyHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.GetHealth)
	app.Get("/api/companies", h.ListCompanies)
	app.Get("/api/companies/search", h.SearchCompanies)
	app.Get("/api/companies/:id", h.GetCompanyByID)
}

// GetHealth godoc
// @Summary Service health check
// @Produce json
// @Router /health [get]
func (h *CompanyHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "company-registry-bot",
	})
}

// ListCompanies godoc
// @Summary List all companies, newest first
// @Produce json
// @Router /api/companies [get]
func (h *CompanyHandler) ListCompanies(c *fiber.Ctx) error {
	companies, err := h.companyRepo.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch companies",
		})
	}
	return c.JSON(companies)
}

// SearchCompanies godoc
// @Summary Substring search by name, taxid or email
// @Produce json
// @Param by query string true "Criterion: name | taxid | email"
// @Param q query string true "Substring to match"
// @Router /api/companies/search [get]
func (h *CompanyHandler) SearchCompanies(c *fiber.Ctx) error {
	by := c.Query("by")
	switch by {
	case repositories.SearchByName, repositories.SearchByTaxID, repositories.SearchByEmail:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "by must be one of: name, taxid, email",
		})
	}

	companies, err := h.companyRepo.Search(by, c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "search failed",
		})
	}
	return c.JSON(companies)
}

// GetCompanyByID godoc
// @Summary Get a company by ID
// @Produce json
// @Param id path string true "Company ID"
// @Router /api/companies/{id} [get]
func (h *CompanyHandler) GetCompanyByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid company id",
		})
	}

	company, err := h.companyRepo.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch company",
		})
	}
	if company == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "company not found",
		})
	}
	return c.JSON(company)
}
