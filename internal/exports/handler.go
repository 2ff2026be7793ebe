package exports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"offerte-engine-backend/internal/storage"
	"offerte-engine-backend/platform/httpkit"
	"offerte-engine-backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	dateLayout      = "2006-01-02"
	noOrgContextMsg = "no organization context"
)

// Handler handles export requests and API key management.
type Handler struct {
	repo          *Repository
	val           *validator.Validator
	store         storage.ArchiveStore
	archiveBucket string
}

// NewHandler creates a new export handler.
func NewHandler(repo *Repository, val *validator.Validator) *Handler {
	return &Handler{repo: repo, val: val}
}

// SetArchiveStore wires the object store used for quote archiving.
func (h *Handler) SetArchiveStore(store storage.ArchiveStore, bucket string) {
	h.store = store
	h.archiveBucket = bucket
}

// ---- Admin API Key Management (JWT authenticated) ----

type CreateAPIKeyRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type APIKeyResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	KeyPrefix  string     `json:"keyPrefix"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  string     `json:"createdAt"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
}

type CreateAPIKeyResponse struct {
	APIKeyResponse
	Key string `json:"key"`
}

func (h *Handler) HandleCreateAPIKey(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	tenantID := identity.TenantID()
	if tenantID == nil {
		httpkit.Error(c, http.StatusForbidden, noOrgContextMsg, nil)
		return
	}

	var req CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	plaintext, hash, prefix, err := GenerateAPIKey()
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to generate API key", nil)
		return
	}

	createdBy := identity.UserID()
	key, err := h.repo.CreateAPIKey(c.Request.Context(), *tenantID, req.Name, hash, prefix, &createdBy)
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, CreateAPIKeyResponse{
		APIKeyResponse: toAPIKeyResponse(key),
		Key:            plaintext,
	})
}

func (h *Handler) HandleListAPIKeys(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	tenantID := identity.TenantID()
	if tenantID == nil {
		httpkit.Error(c, http.StatusForbidden, noOrgContextMsg, nil)
		return
	}

	keys, err := h.repo.ListAPIKeys(c.Request.Context(), *tenantID)
	if httpkit.HandleError(c, err) {
		return
	}

	result := make([]APIKeyResponse, len(keys))
	for i, k := range keys {
		result[i] = toAPIKeyResponse(k)
	}

	httpkit.OK(c, result)
}

func (h *Handler) HandleRevokeAPIKey(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	tenantID := identity.TenantID()
	if tenantID == nil {
		httpkit.Error(c, http.StatusForbidden, noOrgContextMsg, nil)
		return
	}

	keyID, err := uuid.Parse(c.Param("keyId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid key id", nil)
		return
	}

	if err := h.repo.RevokeAPIKey(c.Request.Context(), keyID, *tenantID); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"message": "api key revoked"})
}

// ---- Accepted quotes CSV pull (API key authenticated) ----

// HandleExportAcceptedCSV streams accepted quote lines as CSV for an external
// bookkeeping system. Quotes already pulled are skipped unless
// includeExported=true, and newly written quotes are recorded in the ledger.
func (h *Handler) HandleExportAcceptedCSV(c *gin.Context) {
	orgID, ok := getExportOrgID(c)
	if !ok {
		return
	}

	keyID, ok := getExportKeyID(c)
	if ok {
		h.repo.TouchAPIKey(c.Request.Context(), keyID)
	}

	fromDate, toDate, err := parseDateRange(c)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid date range", err.Error())
		return
	}

	limit := parseLimit(c, 1000, 10000)
	includeExported := parseBool(c.Query("includeExported"))

	quotes, err := h.repo.ListAcceptedQuotes(c.Request.Context(), orgID, fromDate, toDate, limit)
	if httpkit.HandleError(c, err) {
		return
	}

	exported := map[uuid.UUID]struct{}{}
	if !includeExported {
		ids := make([]uuid.UUID, 0, len(quotes))
		for _, q := range quotes {
			ids = append(ids, q.ID)
		}
		exported, err = h.repo.ListExportedQuoteIDs(c.Request.Context(), orgID, ids)
		if httpkit.HandleError(c, err) {
			return
		}
	}

	writer, ok := startCsvResponse(c)
	if !ok {
		return
	}

	written := make([]uuid.UUID, 0, len(quotes))
	for _, quote := range quotes {
		if _, skip := exported[quote.ID]; skip {
			continue
		}
		for _, line := range quote.Lines {
			record := []string{
				quote.QuoteNumber,
				quote.AcceptedAt.Format(dateLayout),
				quote.CustomerName,
				quote.QuoteType,
				line.Scope,
				line.Description,
				line.Kind,
				formatQuantity(line.Quantity),
				line.Unit,
				formatAmount(line.UnitPrice),
				formatAmount(line.Total),
				formatAmount(quote.InclVat),
			}
			if err := writer.Write(record); err != nil {
				return
			}
		}
		written = append(written, quote.ID)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return
	}

	if !includeExported {
		_ = h.repo.RecordExports(c.Request.Context(), orgID, written)
	}
}

// ---- Workbook download and archive (JWT authenticated) ----

// HandleDownloadWorkbook renders a quote as an XLSX workbook and streams it.
func (h *Handler) HandleDownloadWorkbook(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	tenantID := identity.TenantID()
	if tenantID == nil {
		httpkit.Error(c, http.StatusForbidden, noOrgContextMsg, nil)
		return
	}

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid quote id", nil)
		return
	}

	quote, err := h.repo.GetQuoteForExport(c.Request.Context(), quoteID, *tenantID)
	if httpkit.HandleError(c, err) {
		return
	}

	content, err := BuildQuoteWorkbook(quote)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to build workbook", nil)
		return
	}

	fileName := ArchiveFileName(quote.QuoteNumber, time.Now().UTC())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

// HandleArchiveQuote renders a quote workbook, uploads it to object storage
// and stores the object key on the quote. Returns a presigned download URL.
func (h *Handler) HandleArchiveQuote(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	tenantID := identity.TenantID()
	if tenantID == nil {
		httpkit.Error(c, http.StatusForbidden, noOrgContextMsg, nil)
		return
	}
	if h.store == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, "archive storage is not configured", nil)
		return
	}

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid quote id", nil)
		return
	}

	quote, err := h.repo.GetQuoteForExport(c.Request.Context(), quoteID, *tenantID)
	if httpkit.HandleError(c, err) {
		return
	}

	content, err := BuildQuoteWorkbook(quote)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to build workbook", nil)
		return
	}

	fileName := ArchiveFileName(quote.QuoteNumber, time.Now().UTC())
	fileKey, err := h.store.UploadFile(
		c.Request.Context(),
		h.archiveBucket,
		tenantID.String(),
		fileName,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		bytes.NewReader(content),
		int64(len(content)),
	)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to upload archive", nil)
		return
	}

	if err := h.repo.SetArchiveKey(c.Request.Context(), quoteID, *tenantID, fileKey); httpkit.HandleError(c, err) {
		return
	}

	url, err := h.store.GenerateDownloadURL(c.Request.Context(), h.archiveBucket, fileKey)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to generate download url", nil)
		return
	}

	httpkit.OK(c, gin.H{
		"fileKey":   fileKey,
		"url":       url.URL,
		"expiresAt": url.ExpiresAt,
	})
}

// ---- Helpers ----

var csvHeaders = []string{
	"Offertenummer",
	"Geaccepteerd op",
	"Klant",
	"Soort",
	"Scope",
	"Omschrijving",
	"Regelsoort",
	"Aantal",
	"Eenheid",
	"Prijs per eenheid",
	"Regeltotaal",
	"Offerte incl btw",
}

func getExportOrgID(c *gin.Context) (uuid.UUID, bool) {
	orgIDVal, ok := c.Get(ctxExportOrgID)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing organization context", nil)
		return uuid.UUID{}, false
	}
	orgID, ok := orgIDVal.(uuid.UUID)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing organization context", nil)
		return uuid.UUID{}, false
	}
	return orgID, true
}

func getExportKeyID(c *gin.Context) (uuid.UUID, bool) {
	keyIDVal, _ := c.Get(ctxExportKeyID)
	keyID, ok := keyIDVal.(uuid.UUID)
	return keyID, ok
}

func startCsvResponse(c *gin.Context) (*csv.Writer, bool) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=offertes.csv")

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(csvHeaders); err != nil {
		return nil, false
	}
	return writer, true
}

func toAPIKeyResponse(key APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:         key.ID,
		Name:       key.Name,
		KeyPrefix:  key.KeyPrefix,
		IsActive:   key.IsActive,
		CreatedAt:  key.CreatedAt.Format(time.RFC3339),
		LastUsedAt: key.LastUsedAt,
	}
}

func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	defaultFrom := now.AddDate(0, 0, -90)
	fromStr := strings.TrimSpace(c.DefaultQuery("fromDate", ""))
	toStr := strings.TrimSpace(c.DefaultQuery("toDate", ""))

	from := defaultFrom
	to := now

	if fromStr != "" {
		parsed, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("toDate before fromDate")
	}
	return from, to, nil
}

func parseLimit(c *gin.Context, fallback int, max int) int {
	limit := fallback
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	if limit > max {
		return max
	}
	if limit < 1 {
		return fallback
	}
	return limit
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func formatQuantity(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
