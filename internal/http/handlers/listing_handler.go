// Listing HTTP handlers.
//
// This file exposes the domain listing feed:
//   - GET /domains             (HTML page with the first window and stats)
//   - GET /domains/load-more   (JSON window for "load more")
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-domain-finder/internal/domain"
	"github.com/tbourn/go-domain-finder/internal/http/middleware"
	"github.com/tbourn/go-domain-finder/internal/services"
)

//
// DTOs
//

// LoadMoreResponse is returned by GET /domains/load-more on success.
type LoadMoreResponse struct {
	Success bool                 `json:"success" example:"true"`
	Domains []domain.ListingView `json:"domains"`
	HasMore bool                 `json:"has_more" example:"false"`
}

// LoadMoreError is returned by GET /domains/load-more on failure.
type LoadMoreError struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Invalid parameters"`
}

// queryValue returns the raw value of key. A key present with an empty
// value is reported as invalid rather than absent.
func queryValue(c *gin.Context, key string) (string, bool) {
	v, present := c.GetQuery(key)
	if present && v == "" {
		return "", false
	}
	return v, true
}

// Domains renders the listings page.
func (h *Handlers) Domains(c *gin.Context) {
	ov, err := h.listings.Overview(c.Request.Context())
	if err != nil {
		h.pageError(c, err)
		return
	}
	h.render(c, http.StatusOK, tmplDomains, "Domains for Sale", gin.H{
		"Domains":     ov.Listings,
		"DomainCount": ov.DomainCount,
		"PriceRange":  ov.PriceRange,
		"HasMore":     ov.HasMore,
		"PageSize":    ov.PageSize,
	})
}

// LoadMoreDomains godoc
// @ID          loadMoreDomains
// @Summary     Load a window of domain listings
// @Description Returns available listings in display order (homepage-featured first, then newest) starting at offset.
// @Tags        Domains
// @Produce     json
//
// @Param       offset  query  int  false  "Rows to skip"     minimum(0) default(0)
// @Param       limit   query  int  false  "Rows to return"   minimum(0) default(6)
//
// @Success     200  {object}  handlers.LoadMoreResponse
// @Failure     400  {object}  handlers.LoadMoreError  "Invalid parameters"
// @Failure     500  {object}  handlers.LoadMoreError  "Internal error"
// @Router      /domains/load-more [get]
func (h *Handlers) LoadMoreDomains(c *gin.Context) {
	offRaw, okOff := queryValue(c, "offset")
	limRaw, okLim := queryValue(c, "limit")
	if !okOff || !okLim {
		loadMoreFail(c, http.StatusBadRequest, msgInvalidParameters)
		return
	}
	offset, limit, err := h.listings.ParsePageParams(offRaw, limRaw)
	if err != nil {
		loadMoreFail(c, http.StatusBadRequest, msgInvalidParameters)
		return
	}

	page, err := h.listings.Page(c.Request.Context(), offset, limit)
	if errors.Is(err, services.ErrInvalidParameters) {
		loadMoreFail(c, http.StatusBadRequest, msgInvalidParameters)
		return
	}
	if err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Int("offset", offset).Int("limit", limit).Msg("load more failed")
		loadMoreFail(c, http.StatusInternalServerError, msgGenericFailure)
		return
	}
	ok(c, http.StatusOK, LoadMoreResponse{Success: true, Domains: page.Listings, HasMore: page.HasMore})
}
