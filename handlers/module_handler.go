package handlers

import (
	"net/http"
	"strconv"

	"codezest/services"

	"github.com/gin-gonic/gin"
)

type ModuleHandler struct {
	moduleService *services.ModuleService
}

func NewModuleHandler(moduleService *services.ModuleService) *ModuleHandler {
	return &ModuleHandler{
		moduleService: moduleService,
	}
}

func (h *ModuleHandler) CreateModule(c *gin.Context) {
	var req services.ModuleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	module, err := h.moduleService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, module)
}

func (h *ModuleHandler) ListModules(c *gin.Context) {
	var filter services.ModuleFilter
	if raw := c.Query("languageId"); raw != "" {
		languageID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid languageId"})
			return
		}
		filter.LanguageID = uint(languageID)
	}
	filter.Search = c.Query("search")

	modules, err := h.moduleService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, modules)
}

func (h *ModuleHandler) GetModuleByID(c *gin.Context) {
	moduleID, ok := parseID(c)
	if !ok {
		return
	}

	module, err := h.moduleService.Get(c.Request.Context(), moduleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, module)
}

func (h *ModuleHandler) UpdateModule(c *gin.Context) {
	moduleID, ok := parseID(c)
	if !ok {
		return
	}

	var req services.ModuleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	module, err := h.moduleService.Update(c.Request.Context(), moduleID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, module)
}

func (h *ModuleHandler) DeleteModule(c *gin.Context) {
	moduleID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.moduleService.SoftDelete(c.Request.Context(), moduleID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Module deleted successfully"})
}
