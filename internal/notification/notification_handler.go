package notification

import (
	"go-teamplanner/internal/shared/apperror"
	"go-teamplanner/internal/shared/response"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("notification request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Notifications are addressed to the employee record, so the handlers key
// by the employee_id claim rather than the login id.
func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")
	recipientID := c.GetString("employee_id")

	resp, err := h.service.GetAll(c.Request.Context(), companyID, recipientID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	companyID := c.GetString("company_id")
	recipientID := c.GetString("employee_id")

	count, err := h.service.UnreadCount(c.Request.Context(), companyID, recipientID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": count}, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	companyID := c.GetString("company_id")
	recipientID := c.GetString("employee_id")
	id := c.Param("id")

	resp, err := h.service.MarkRead(c.Request.Context(), companyID, recipientID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkUnread(c *gin.Context) {
	companyID := c.GetString("company_id")
	recipientID := c.GetString("employee_id")
	id := c.Param("id")

	resp, err := h.service.MarkUnread(c.Request.Context(), companyID, recipientID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	companyID := c.GetString("company_id")
	recipientID := c.GetString("employee_id")

	updated, err := h.service.MarkAllRead(c.Request.Context(), companyID, recipientID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": updated}, nil)
}

func (h *Handler) Clear(c *gin.Context) {
	companyID := c.GetString("company_id")
	recipientID := c.GetString("employee_id")

	deleted, err := h.service.Clear(c.Request.Context(), companyID, recipientID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted}, nil)
}

func (h *Handler) EmailHistory(c *gin.Context) {
	companyID := c.GetString("company_id")
	recipientID := c.GetString("employee_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.service.EmailHistory(c.Request.Context(), companyID, recipientID, limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
