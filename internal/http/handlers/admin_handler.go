// Admin HTTP handlers.
//
// This file exposes the back-office API, mounted under /admin behind HTTP
// Basic auth:
//   - GET    /submissions                  (list, paginated)
//   - PATCH  /submissions/{id}/responded   (mark answered)
//   - POST   /contact-info/{id}/activate   (switch active contact config)
//   - POST   /homepage/{id}/activate       (switch active homepage)
//   - POST   /domains                      (create listing)
//   - DELETE /currencies/{id}, /statuses/{id}
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-domain-finder/internal/domain"
	"github.com/tbourn/go-domain-finder/internal/services"
	"github.com/tbourn/go-domain-finder/internal/utils"
)

// AdminService defines the back-office operations consumed by AdminHandlers.
type AdminService interface {
	ListSubmissions(ctx context.Context, page, pageSize int) ([]domain.ContactSubmission, int64, error)
	MarkResponded(ctx context.Context, id string, responded bool) error
	ActivateContactInfo(ctx context.Context, id uint) error
	ActivateHomePage(ctx context.Context, id uint) error
	CreateListing(ctx context.Context, in services.NewListing) (*domain.DomainListing, error)
	DeleteCurrency(ctx context.Context, id uint) error
	DeleteStatus(ctx context.Context, id uint) error
}

// AdminHandlers groups the admin endpoints.
type AdminHandlers struct {
	svc AdminService
}

// NewAdmin constructs AdminHandlers.
func NewAdmin(svc AdminService) *AdminHandlers {
	return &AdminHandlers{svc: svc}
}

//
// DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListSubmissionsResponse wraps a page of submissions.
type ListSubmissionsResponse struct {
	Submissions []domain.ContactSubmission `json:"submissions"`
	Pagination  Pagination                 `json:"pagination"`
}

// MarkRespondedRequest toggles the responded flag.
type MarkRespondedRequest struct {
	Responded *bool `json:"responded" binding:"required" example:"true"`
}

// CreateListingRequest is the payload for POST /admin/domains.
type CreateListingRequest struct {
	Name                 string `json:"name" binding:"required,max=100" example:"example.com"`
	Description          string `json:"description" binding:"required" example:"Short, brandable .com"`
	Price                string `json:"price" binding:"required" example:"15000.00"`
	CurrencyID           *uint  `json:"currency_id" example:"1"`
	StatusID             uint   `json:"status_id" binding:"required" example:"1"`
	Features             string `json:"features" example:"Short\nBrandable"`
	ListingURL           string `json:"listing_url" binding:"omitempty,url,max=500" example:"https://www.afternic.com/domain/example.com"`
	WebsiteName          string `json:"website_name" binding:"max=50" example:"Afternic"`
	IsAvailable          *bool  `json:"is_available" example:"true"`
	IsFeaturedOnHomepage bool   `json:"is_featured_on_homepage" example:"false"`
	DirectToContact      bool   `json:"direct_to_contact" example:"false"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page, err := utils.ParseNonNegativeInt(c.Query("page"), defaultPage)
	if err != nil || page < 1 {
		page = defaultPage
	}
	pageSize, err = utils.ParseNonNegativeInt(c.Query("page_size"), defaultPageSize)
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// idParam parses a positive numeric path id.
func idParam(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return 0, false
	}
	return uint(n), true
}

// serviceError maps admin service errors to the error envelope.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrSubmissionNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrProtected):
		fail(c, http.StatusConflict, ErrCodeConflict, "record is referenced by a listing")
	case errors.Is(err, services.ErrConflict):
		fail(c, http.StatusConflict, ErrCodeConflict, "a listing with this name already exists")
	case errors.Is(err, services.ErrInvalidListing):
		fail(c, http.StatusUnprocessableEntity, ErrCodeInvalidListing, err.Error())
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}

//
// Handlers
//

// ListSubmissions godoc
// @ID          listSubmissions
// @Summary     List contact submissions (paginated)
// @Tags        Admin
// @Produce     json
// @Security    BasicAuth
//
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListSubmissionsResponse
// @Failure     401  {string}  string                  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/submissions [get]
func (h *AdminHandlers) ListSubmissions(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.svc.ListSubmissions(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list submissions")
		return
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListSubmissionsResponse{
		Submissions: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// MarkResponded godoc
// @ID          markSubmissionResponded
// @Summary     Mark a submission as responded
// @Tags        Admin
// @Accept      json
// @Security    BasicAuth
//
// @Param       id    path  string                          true  "Submission ID (UUID)"  format(uuid)
// @Param       body  body  handlers.MarkRespondedRequest  true  "Flag"
//
// @Success     204  {string}  string                  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Submission not found"
// @Router      /admin/submissions/{id}/responded [patch]
func (h *AdminHandlers) MarkResponded(c *gin.Context) {
	var req MarkRespondedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "responded (bool) required")
		return
	}
	if err := h.svc.MarkResponded(c.Request.Context(), c.Param("id"), *req.Responded); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}

// ActivateContactInfo godoc
// @ID          activateContactInfo
// @Summary     Make a contact configuration the active one
// @Tags        Admin
// @Security    BasicAuth
// @Param       id  path  int  true  "ContactInfo ID"
// @Success     204  {string}  string                  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /admin/contact-info/{id}/activate [post]
func (h *AdminHandlers) ActivateContactInfo(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	if err := h.svc.ActivateContactInfo(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}

// ActivateHomePage godoc
// @ID          activateHomePage
// @Summary     Make a homepage the active one
// @Tags        Admin
// @Security    BasicAuth
// @Param       id  path  int  true  "HomePage ID"
// @Success     204  {string}  string                  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /admin/homepage/{id}/activate [post]
func (h *AdminHandlers) ActivateHomePage(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	if err := h.svc.ActivateHomePage(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}

// CreateListing godoc
// @ID          createListing
// @Summary     Create a domain listing
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BasicAuth
//
// @Param       body  body  handlers.CreateListingRequest  true  "Listing"
//
// @Success     201  {object}  domain.ListingView
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Name taken"
// @Failure     422  {object}  handlers.ErrorResponse  "Listing breaks a data rule"
// @Router      /admin/domains [post]
func (h *AdminHandlers) CreateListing(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid listing payload")
		return
	}
	l, err := h.svc.CreateListing(c.Request.Context(), services.NewListing{
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price,
		CurrencyID:           req.CurrencyID,
		StatusID:             req.StatusID,
		Features:             req.Features,
		ListingURL:           req.ListingURL,
		WebsiteName:          req.WebsiteName,
		IsAvailable:          req.IsAvailable,
		IsFeaturedOnHomepage: req.IsFeaturedOnHomepage,
		DirectToContact:      req.DirectToContact,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, l.View())
}

// DeleteCurrency godoc
// @ID          deleteCurrency
// @Summary     Delete an unused currency
// @Tags        Admin
// @Security    BasicAuth
// @Param       id  path  int  true  "Currency ID"
// @Success     204  {string}  string                  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Referenced by a listing"
// @Router      /admin/currencies/{id} [delete]
func (h *AdminHandlers) DeleteCurrency(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	if err := h.svc.DeleteCurrency(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}

// DeleteStatus godoc
// @ID          deleteStatus
// @Summary     Delete an unused listing status
// @Tags        Admin
// @Security    BasicAuth
// @Param       id  path  int  true  "Status ID"
// @Success     204  {string}  string                  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Referenced by a listing"
// @Router      /admin/statuses/{id} [delete]
func (h *AdminHandlers) DeleteStatus(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	if err := h.svc.DeleteStatus(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}
