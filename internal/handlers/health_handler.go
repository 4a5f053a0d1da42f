package handlers

import (
	"net/http"

	"github.com/Tofik-Raza/HireSense-AI/internal/config"
	"github.com/Tofik-Raza/HireSense-AI/internal/llm"
	"github.com/Tofik-Raza/HireSense-AI/internal/utils"

	"gorm.io/gorm"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"`
	Checks  map[string]ReadinessCheck `json:"checks"`
}

type HealthHandler struct {
	db       *gorm.DB
	provider llm.Provider
	config   *config.Config
}

func NewHealthHandler(db *gorm.DB, provider llm.Provider, cfg *config.Config) *HealthHandler {
	return &HealthHandler{db: db, provider: provider, config: cfg}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "screener",
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	if handler.db == nil {
		checks["database"] = ReadinessCheck{Status: "failed", Message: "Database not initialized"}
		allChecksPass = false
	} else if sqlDB, err := handler.db.DB(); err != nil {
		checks["database"] = ReadinessCheck{Status: "failed", Message: err.Error()}
		allChecksPass = false
	} else if err := sqlDB.PingContext(request.Context()); err != nil {
		checks["database"] = ReadinessCheck{Status: "failed", Message: err.Error()}
		allChecksPass = false
	} else {
		checks["database"] = ReadinessCheck{Status: "ok"}
	}

	if handler.provider == nil {
		checks["provider"] = ReadinessCheck{Status: "failed", Message: "AI provider not initialized"}
		allChecksPass = false
	} else {
		checks["provider"] = ReadinessCheck{Status: "ok"}
	}

	if handler.config == nil {
		checks["configuration"] = ReadinessCheck{Status: "failed", Message: "Configuration not loaded"}
		allChecksPass = false
	} else if handler.config.TwilioAccountSID == "" || handler.config.TwilioAuthToken == "" {
		checks["telephony"] = ReadinessCheck{Status: "failed", Message: "Telephony credentials missing"}
		allChecksPass = false
	} else {
		checks["configuration"] = ReadinessCheck{Status: "ok"}
		checks["telephony"] = ReadinessCheck{Status: "ok"}
	}

	response := ReadinessResponse{Service: "screener", Checks: checks}
	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
