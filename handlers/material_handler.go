package handlers

import (
	"net/http"
	"strconv"

	"codezest/services"

	"github.com/gin-gonic/gin"
)

type MaterialHandler struct {
	materialService *services.MaterialService
}

func NewMaterialHandler(materialService *services.MaterialService) *MaterialHandler {
	return &MaterialHandler{
		materialService: materialService,
	}
}

func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	var req services.MaterialInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := h.materialService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	var filter services.MaterialFilter
	if raw := c.Query("moduleId"); raw != "" {
		moduleID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid moduleId"})
			return
		}
		filter.ModuleID = uint(moduleID)
	}
	filter.Search = c.Query("search")

	materials, err := h.materialService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, materials)
}

func (h *MaterialHandler) GetMaterialByID(c *gin.Context) {
	materialID, ok := parseID(c)
	if !ok {
		return
	}

	material, err := h.materialService.Get(c.Request.Context(), materialID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
	materialID, ok := parseID(c)
	if !ok {
		return
	}

	var req services.MaterialInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := h.materialService.Update(c.Request.Context(), materialID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	materialID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.materialService.SoftDelete(c.Request.Context(), materialID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Material deleted successfully"})
}
