package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Yasser-Essafi/SRM/internal/agent"
	"github.com/Yasser-Essafi/SRM/internal/extract"
	"github.com/Yasser-Essafi/SRM/internal/http/middleware"
	"github.com/Yasser-Essafi/SRM/internal/model"
	"github.com/Yasser-Essafi/SRM/internal/service"
)

// TextRecognizer is the OCR text provider; only the recognized text reaches
// the extractor.
type TextRecognizer interface {
	ExtractText(ctx context.Context, filename, contentType string, image io.Reader) (string, error)
}

// Replier is the conversation orchestrator surface the chat endpoint needs.
type Replier interface {
	Reply(ctx context.Context, history []agent.Message, userMessage string) (string, error)
}

type Handler struct {
	status  *service.StatusService
	reports *service.ReportService
	agent   Replier // nil when the agent is disabled
	ocr     TextRecognizer
	log     zerolog.Logger
}

func NewHandler(status *service.StatusService, reports *service.ReportService, replier Replier, recognizer TextRecognizer, log zerolog.Logger) *Handler {
	return &Handler{
		status:  status,
		reports: reports,
		agent:   replier,
		ocr:     recognizer,
		log:     log,
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "SRM AI Customer Service",
	})
}

type chatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type chatRequest struct {
	Message   string        `json:"message" binding:"required"`
	SessionID string        `json:"session_id"`
	History   []chatMessage `json:"history"`
}

func (h *Handler) chat(c *gin.Context) {
	if h.agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is disabled"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history := make([]agent.Message, 0, len(req.History))
	for _, m := range req.History {
		role := strings.ToLower(m.Role)
		if role != "user" && role != "assistant" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "history roles must be user or assistant"})
			return
		}
		history = append(history, agent.Message{Role: role, Content: m.Content})
	}

	started := time.Now()
	reply, err := h.agent.Reply(c.Request.Context(), history, req.Message)
	if err != nil {
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("agent reply failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant failed, please try again"})
		return
	}
	h.log.Info().
		Str("session_id", sessionID).
		Dur("took", time.Since(started)).
		Msg("chat reply sent")

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"response":   reply,
		"status":     "success",
	})
}

func (h *Handler) extractContract(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "no file uploaded",
			"error_ar": "لم يتم رفع أي ملف",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer file.Close()

	text, err := h.ocr.ExtractText(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.log.Error().Err(err).Msg("ocr extraction failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":    "text recognition failed",
			"error_ar": "حدث خطأ في معالجة الصورة",
		})
		return
	}

	contracts := extract.FromText(text)
	if contracts.Empty() {
		c.JSON(http.StatusNotFound, gin.H{
			"error":    "no contract number found in image",
			"error_ar": "لم يتم العثور على رقم عقد في الصورة",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"water_contract":       contracts.Water,
		"electricity_contract": contracts.Electricity,
		"status":               "success",
	})
}

type statusRequest struct {
	Service        string `json:"service" binding:"required"`
	ContractNumber string `json:"contract_number" binding:"required"`
}

type statusResponse struct {
	Service               model.Service   `json:"service"`
	ContractNumber        string          `json:"contract_number"`
	CustomerName          string          `json:"customer_name"`
	IsPaid                bool            `json:"is_paid"`
	OutstandingBalance    float64         `json:"outstanding_balance"`
	LastPaymentDate       string          `json:"last_payment_date"`
	CutStatus             model.CutStatus `json:"cut_status"`
	CutReason             *string         `json:"cut_reason,omitempty"`
	Cause                 model.Cause     `json:"cause"`
	ZoneName              string          `json:"zone_name,omitempty"`
	ZoneMaintenanceActive bool            `json:"zone_maintenance_active"`
	OutageReason          *string         `json:"outage_reason,omitempty"`
	EstimatedRestoration  *string         `json:"estimated_restoration,omitempty"`
	Warnings              []string        `json:"warnings,omitempty"`
}

func (h *Handler) contractStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, err := parseService(req.Service)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service must be water or electricity"})
		return
	}

	report, err := h.status.Status(c.Request.Context(), svc, req.ContractNumber)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := statusResponse{
		Service:               report.Service,
		ContractNumber:        report.ContractNumber,
		CustomerName:          report.CustomerName,
		IsPaid:                report.IsPaid,
		OutstandingBalance:    report.OutstandingBalance,
		LastPaymentDate:       report.LastPaymentDate.Format("2006-01-02"),
		CutStatus:             report.CutStatus,
		CutReason:             report.CutReason,
		Cause:                 report.Cause,
		ZoneName:              report.ZoneName,
		ZoneMaintenanceActive: report.ZoneMaintenanceActive,
		OutageReason:          report.OutageReason,
		Warnings:              report.Warnings,
	}
	if report.EstimatedRestoration != nil {
		formatted := report.EstimatedRestoration.Format("2006-01-02 15:04")
		resp.EstimatedRestoration = &formatted
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) exportReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	result, err := h.reports.ExportExcel(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) exportReportPDF(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	result, err := h.reports.ExportPDF(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

// handleError maps the service error kinds to user-facing responses. The
// three user-visible cases stay distinct: bad number shape, unknown number,
// and our-side failure.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidContractFormat), errors.Is(err, service.ErrInvalidService):
		c.JSON(http.StatusBadRequest, gin.H{"error": "that does not look like a valid contract number"})
	case errors.Is(err, service.ErrContractNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "contract not found, please check your number"})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	case errors.Is(err, service.ErrStoreUnavailable):
		h.log.Error().Err(err).Msg("backing store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "something went wrong on our side, please try again"})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseService(raw string) (model.Service, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "water":
		return model.ServiceWater, nil
	case "electricity":
		return model.ServiceElectricity, nil
	default:
		return "", service.ErrInvalidService
	}
}
