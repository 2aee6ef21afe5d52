package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"contact-dedupe/internal/api"
	"contact-dedupe/internal/contact"
	"contact-dedupe/internal/logger"
	"contact-dedupe/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// MatchHandler handles duplicate detection requests
type MatchHandler struct {
	dedupeService  *service.DedupeService
	validator      *validator.Validate
	maxContacts    int
	maxUploadBytes int64
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(dedupeService *service.DedupeService, maxContacts int, maxUploadBytes int64) *MatchHandler {
	return &MatchHandler{
		dedupeService:  dedupeService,
		validator:      validator.New(),
		maxContacts:    maxContacts,
		maxUploadBytes: maxUploadBytes,
	}
}

// ContactRequest is one contact in a match request
type ContactRequest struct {
	ID         int    `json:"id" validate:"min=0"`
	GivenName  string `json:"given_name" validate:"max=255"`
	Surname    string `json:"surname" validate:"max=255"`
	Email      string `json:"email" validate:"max=320"`
	PostalCode string `json:"postal_code" validate:"max=32"`
	Address    string `json:"address" validate:"max=500"`
}

// MatchRequest is the body of POST /api/v1/matches
type MatchRequest struct {
	Contacts []ContactRequest `json:"contacts" validate:"required,dive"`
}

func (r ContactRequest) cells() []string {
	return []string{strconv.Itoa(r.ID), r.GivenName, r.Surname, r.Email, r.PostalCode, r.Address}
}

// FindMatches scores every pair of the posted contacts
func (h *MatchHandler) FindMatches(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		api.SendValidationError(c, "Validation failed", err.Error())
		return
	}

	if len(req.Contacts) > h.maxContacts {
		api.SendValidationError(c, "Validation failed", tooManyContacts(len(req.Contacts), h.maxContacts))
		return
	}

	// Same skip policy as file ingestion; positions follow the request order.
	contacts := lo.FilterMap(req.Contacts, func(r ContactRequest, i int) (contact.Record, bool) {
		return contact.ParseRow(r.cells(), i+1)
	})

	run := h.dedupeService.Run(c.Request.Context(), contacts)
	api.SendSuccess(c, http.StatusOK, run.Document())
}

// UploadMatches scores every pair of the contacts in an uploaded .xlsx or
// .csv file sent as the multipart field "file"
func (h *MatchHandler) UploadMatches(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	file, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			api.SendPayloadTooLarge(c, fmt.Sprintf("upload exceeds %d bytes", h.maxUploadBytes))
			return
		}
		api.SendValidationError(c, "Missing contact file", err.Error())
		return
	}

	reader, err := contact.ReaderFor(file.Filename)
	if err != nil {
		api.SendBadRequest(c, "Unsupported contact file", err.Error())
		return
	}

	f, err := file.Open()
	if err != nil {
		logger.Error().Err(err).Str("file", file.Filename).Msg("failed to open uploaded file")
		api.SendInternalError(c, "Failed to open uploaded file")
		return
	}
	defer f.Close()

	contacts, err := reader.Read(c.Request.Context(), f)
	if err != nil {
		api.SendValidationError(c, "Invalid contact file", err.Error())
		return
	}

	if len(contacts) > h.maxContacts {
		api.SendValidationError(c, "Validation failed", tooManyContacts(len(contacts), h.maxContacts))
		return
	}

	run := h.dedupeService.Run(c.Request.Context(), contacts)
	api.SendSuccess(c, http.StatusOK, run.Document())
}

func tooManyContacts(got, limit int) string {
	return fmt.Sprintf("%d contacts exceed the limit of %d per request", got, limit)
}
