// Package proxy forwards raw API calls to the campus backend unchanged,
// for clients that speak the upstream contract directly.
package proxy

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler forwards any method under its route prefix onto the upstream
// base URL, passing headers and body through verbatim.
type Handler struct {
	baseURL    string
	http       *http.Client
	production bool
	logger     *zap.Logger
}

// NewHandler creates a proxy handler. baseURL trailing slashes are trimmed
// so joined paths never carry doubled separators.
func NewHandler(baseURL string, client *http.Client, production bool, logger *zap.Logger) *Handler {
	return &Handler{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       client,
		production: production,
		logger:     logger,
	}
}

// Forward handles any /api/*path request.
func (h *Handler) Forward(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	url := h.baseURL + "/" + path
	if raw := c.Request.URL.RawQuery; raw != "" {
		url += "?" + raw
	}

	// GET and DELETE carry no body upstream; everything else is forwarded
	// verbatim.
	var body io.Reader
	method := c.Request.Method
	if method != http.MethodGet && method != http.MethodDelete {
		body = c.Request.Body
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), method, url, body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build proxy request"})
		return
	}
	for key, values := range c.Request.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := h.http.Do(req)
	if err != nil {
		h.logger.Error("proxy upstream failure", zap.String("url", url), zap.Error(err))
		payload := gin.H{"error": "Backend server is not available. Please check if the backend is running."}
		if !h.production {
			payload["details"] = err.Error()
		}
		c.JSON(http.StatusServiceUnavailable, payload)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		h.logger.Error("proxy upstream server error",
			zap.Int("status", resp.StatusCode),
			zap.String("url", url))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Status(resp.StatusCode)
	c.Header("Content-Type", contentType)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		h.logger.Warn("proxy response copy interrupted", zap.Error(err))
	}
}
