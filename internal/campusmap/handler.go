package campusmap

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/auth"
	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/relay"
	"github.com/campus-events/portal/pkg/response"
	"github.com/campus-events/portal/pkg/storage"
)

// PageData is the JSON view for one map page: navigation plus the markers
// for that page.
type PageData struct {
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	HasPrev    bool     `json:"has_prev"`
	HasNext    bool     `json:"has_next"`
	Markers    []Marker `json:"markers"`
}

// Handler handles campus map endpoints.
type Handler struct {
	api      *gateway.Client
	loader   *Loader
	renderer *Renderer
	s3       *storage.S3
	logger   *zap.Logger
}

// NewHandler creates a campus map handler.
func NewHandler(api *gateway.Client, loader *Loader, renderer *Renderer, s3 *storage.S3, logger *zap.Logger) *Handler {
	return &Handler{api: api, loader: loader, renderer: renderer, s3: s3, logger: logger}
}

func pageParam(c *gin.Context) (int, bool) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		response.BadRequest(c, "invalid page number")
		return 0, false
	}
	return page, true
}

// Page handles GET /map/:page — page metadata and markers.
func (h *Handler) Page(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	total, err := h.loader.PageCount(c.Request.Context())
	if err != nil {
		h.logger.Error("map page count failed", zap.Error(err))
		response.Internal(c, "failed to read map pages")
		return
	}
	if total > 0 && page > total {
		response.NotFound(c, "map page not found")
		return
	}
	markers, err := Markers(c.Request.Context(), h.api, page)
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.OK(c, PageData{
		Page:       page,
		TotalPages: total,
		HasPrev:    page > 1,
		HasNext:    page < total,
		Markers:    markers,
	})
}

// Document handles GET /map/:page/document — the raw page PDF. The viewer
// slot is the session id, so a viewer paging quickly cancels their own
// stale load without touching anyone else's.
func (h *Handler) Document(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	slot := "anonymous"
	if id, ok := auth.SessionID(c.Request.Context()); ok {
		slot = id.String()
	}
	data, err := h.renderer.RenderPage(c.Request.Context(), slot, page)
	if err != nil {
		switch {
		case errors.Is(err, ErrSuperseded):
			// The viewer already asked for a different page.
			c.Status(http.StatusNoContent)
		case errors.Is(err, ErrPageNotFound):
			response.NotFound(c, "map page not found")
		default:
			h.logger.Error("map page load failed", zap.Int("page", page), zap.Error(err))
			response.Internal(c, "failed to load map page")
		}
		return
	}
	c.Data(http.StatusOK, storage.MapContentType, data)
}

// DocumentURL handles GET /map/:page/url — a presigned S3 link as an
// alternative to streaming through the portal.
func (h *Handler) DocumentURL(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	url, err := h.s3.PresignedPageURL(c.Request.Context(), page)
	if err != nil {
		h.logger.Error("map presign failed", zap.Int("page", page), zap.Error(err))
		response.Internal(c, "failed to sign map page url")
		return
	}
	response.OK(c, gin.H{"url": url, "expires_in": int(h.s3.PresignExpire().Seconds())})
}

// Upload handles POST /map/:page/document (admin only) — multipart upload
// of a page PDF.
func (h *Handler) Upload(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	file, err := c.FormFile("document")
	if err != nil {
		response.BadRequest(c, "document file is required")
		return
	}
	if file.Size > storage.MaxMapFileSize {
		response.BadRequest(c, "document exceeds the size limit")
		return
	}
	if !storage.ValidateMapFileType(file.Header.Get("Content-Type"), file.Filename) {
		response.BadRequest(c, "only PDF documents are accepted")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Internal(c, "failed to read upload")
		return
	}
	defer src.Close()

	key, err := h.s3.UploadMapPage(c.Request.Context(), page, src, file.Size)
	if err != nil {
		h.logger.Error("map upload failed", zap.Int("page", page), zap.Error(err))
		response.Internal(c, "failed to store map page")
		return
	}
	h.loader.InvalidatePage(c.Request.Context(), page)
	h.logger.Info("map page uploaded", zap.Int("page", page), zap.String("key", key))
	response.Created(c, gin.H{"page": page, "key": key})
}

// Delete handles DELETE /map/:page/document (admin only).
func (h *Handler) Delete(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	if err := h.s3.DeleteMapPage(c.Request.Context(), page); err != nil {
		h.logger.Error("map delete failed", zap.Int("page", page), zap.Error(err))
		response.Internal(c, "failed to delete map page")
		return
	}
	h.loader.InvalidatePage(c.Request.Context(), page)
	response.NoContent(c)
}
