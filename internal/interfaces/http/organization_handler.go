package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lockstock/lockstock-api/internal/application/dto"
	"github.com/lockstock/lockstock-api/internal/application/usecase"
)

// OrganizationHandler maneja organizaciones. Crear y listar solo requieren
// usuario autenticado; no dependen de X-Org-ID.
type OrganizationHandler struct {
	uc *usecase.OrganizationUseCase
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *usecase.OrganizationUseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear organización (el creador queda como owner)
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrganizationRequest  true  "name"
// @Success      201   {object}  dto.OrganizationMembershipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/organizations [post]
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Listar mis organizaciones con rol
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrganizationMembershipResponse
// @Router       /api/organizations [get]
func (h *OrganizationHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddMember godoc
// @Summary      Incorporar un usuario a la organización con un rol
// @Description  El rol concedido no puede superar el rango del actor.
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddOrgMemberRequest  true  "user_id y role"
// @Success      201   {object}  dto.OrgMemberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/org/members [post]
func (h *OrganizationHandler) AddMember(c *fiber.Ctx) error {
	var in dto.AddOrgMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddMember(c.Context(), GetAuthz(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMembers godoc
// @Summary      Listar miembros de la organización con su rol
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrgMemberResponse
// @Router       /api/org/members [get]
func (h *OrganizationHandler) ListMembers(c *fiber.Ctx) error {
	out, err := h.uc.ListMembers(c.Context(), GetAuthz(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Organización activa (según X-Org-ID)
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/org [get]
func (h *OrganizationHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetAuthz(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
