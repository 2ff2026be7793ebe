package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"offerte-engine-backend/internal/offertes/service"
	"offerte-engine-backend/internal/offertes/transport"
	"offerte-engine-backend/platform/config"
	"offerte-engine-backend/platform/httpkit"
	"offerte-engine-backend/platform/validator"
)

const qrImageSize = 256

// PublicHandler handles unauthenticated HTTP requests for the customer-facing
// quote proposal page. Quotes are addressed by their opaque public token.
type PublicHandler struct {
	svc *service.Service
	val *validator.Validator
	cfg config.PublicLinkConfig
}

// NewPublicHandler creates a new public quotes handler.
func NewPublicHandler(svc *service.Service, val *validator.Validator, cfg config.PublicLinkConfig) *PublicHandler {
	return &PublicHandler{svc: svc, val: val, cfg: cfg}
}

// RegisterRoutes registers the public quote routes (no auth middleware).
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:token", h.GetPublicQuote)
	rg.POST("/:token/accepteer", h.Accept)
	rg.POST("/:token/wijs-af", h.Decline)
	rg.GET("/:token/qr.png", h.QRCode)
}

// GetPublicQuote handles GET /api/v1/public/offertes/:token
func (h *PublicHandler) GetPublicQuote(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		httpkit.Error(c, http.StatusBadRequest, "token is required", nil)
		return
	}

	result, err := h.svc.GetPublic(c.Request.Context(), token)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Accept handles POST /api/v1/public/offertes/:token/accepteer
func (h *PublicHandler) Accept(c *gin.Context) {
	token := c.Param("token")

	var req transport.AcceptQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.AcceptByToken(c.Request.Context(), token, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Decline handles POST /api/v1/public/offertes/:token/wijs-af
func (h *PublicHandler) Decline(c *gin.Context) {
	token := c.Param("token")

	var req transport.DeclineQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.DeclineByToken(c.Request.Context(), token, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// QRCode handles GET /api/v1/public/offertes/:token/qr.png
// It renders the customer proposal URL as a PNG so the quote email and any
// printed copy can link to the same page.
func (h *PublicHandler) QRCode(c *gin.Context) {
	token := c.Param("token")

	// Resolve first so unknown tokens return 404 instead of a valid image.
	if _, err := h.svc.GetPublicQuoteID(c.Request.Context(), token); httpkit.HandleError(c, err) {
		return
	}

	png, err := qrcode.Encode(h.publicURL(token), qrcode.Medium, qrImageSize)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to generate qr code", nil)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *PublicHandler) publicURL(token string) string {
	base := strings.TrimRight(h.cfg.GetAppBaseURL(), "/")
	return fmt.Sprintf("%s/offerte/%s", base, token)
}
