package handlers

import (
	"net/http"

	"codezest/services"

	"github.com/gin-gonic/gin"
)

type LanguageHandler struct {
	languageService *services.LanguageService
}

func NewLanguageHandler(languageService *services.LanguageService) *LanguageHandler {
	return &LanguageHandler{
		languageService: languageService,
	}
}

func (h *LanguageHandler) ListLanguages(c *gin.Context) {
	languages, err := h.languageService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, languages)
}
