// Page handlers.
//
// This file renders the public HTML pages:
//   - GET /                     (home)
//   - GET /blog                 (blog list, ?category=<slug>)
//   - GET /blog/{id}            (blog post)
//   - GET /contact              (contact page)
//   - GET /privacy, /terms-uk, /complaints-appeals (legal pages)
//
// Every page receives the active contact configuration for the footer.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-domain-finder/internal/http/middleware"
	"github.com/tbourn/go-domain-finder/internal/services"
)

// Template names registered by the web package.
const (
	tmplHome      = "home.html"
	tmplDomains   = "domains.html"
	tmplBlogList  = "blog_list.html"
	tmplBlogPost  = "blog_detail.html"
	tmplContact   = "contact.html"
	tmplPrivacy   = "privacy.html"
	tmplTerms     = "terms_uk.html"
	tmplComplaint = "complaints_appeals.html"
	tmplNotFound  = "404.html"
	tmplError     = "500.html"
)

// render writes an HTML page. Footer data is looked up here; a lookup
// failure degrades to the template defaults instead of failing the page.
func (h *Handlers) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	info, err := h.content.ContactInfo(c.Request.Context())
	if err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("contact info lookup failed")
	}
	data["ContactInfo"] = info
	data["PageTitle"] = title
	data["Year"] = time.Now().Year()
	c.HTML(status, name, data)
}

// pageError renders the generic error page and logs err.
func (h *Handlers) pageError(c *gin.Context, err error) {
	middleware.LoggerFrom(c).Error().Err(err).Msg("page render failed")
	_ = c.Error(err)
	c.HTML(http.StatusInternalServerError, tmplError, gin.H{
		"PageTitle": "Something went wrong - Domain Finder",
		"Year":      time.Now().Year(),
	})
}

// Home renders the landing page.
func (h *Handlers) Home(c *gin.Context) {
	v, err := h.content.Home(c.Request.Context())
	if err != nil {
		h.pageError(c, err)
		return
	}
	h.render(c, http.StatusOK, tmplHome, "Domain Finder - Expert Domain Research & Analytics", gin.H{
		"Home":                  v.Home,
		"FeaturedPost":          v.FeaturedPost,
		"FeaturedListings":      v.FeaturedListings,
		"ShowAdvancedAnalytics": v.ShowAdvancedAnalytics,
	})
}

// BlogList renders the blog index.
func (h *Handlers) BlogList(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("category"))
	v, err := h.content.BlogList(c.Request.Context(), slug)
	if err != nil {
		h.pageError(c, err)
		return
	}
	h.render(c, http.StatusOK, tmplBlogList, "Domain Research Blog - Expert Insights & Trends", gin.H{
		"FeaturedPost":    v.FeaturedPost,
		"Posts":           v.Posts,
		"Categories":      v.Categories,
		"CurrentCategory": v.CurrentCategory,
		"TotalPosts":      v.Total,
		"ShowLoadMore":    v.ShowLoadMore,
	})
}

// BlogDetail renders one published post or the 404 page.
func (h *Handlers) BlogDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		h.NotFound(c)
		return
	}
	v, err := h.content.BlogDetail(c.Request.Context(), uint(id))
	if errors.Is(err, services.ErrPostNotFound) {
		h.NotFound(c)
		return
	}
	if err != nil {
		h.pageError(c, err)
		return
	}
	h.render(c, http.StatusOK, tmplBlogPost, v.Post.Title+" - Domain Finder Blog", gin.H{
		"Post":        v.Post,
		"ContentHTML": v.ContentHTML,
		"Related":     v.Related,
	})
}

// ContactPage renders the contact form page.
func (h *Handlers) ContactPage(c *gin.Context) {
	v, err := h.content.ContactPage(c.Request.Context())
	if err != nil {
		h.pageError(c, err)
		return
	}
	h.render(c, http.StatusOK, tmplContact, "Contact Us - Domain Finder", gin.H{
		"Info":             v.Info,
		"Services":         v.Services,
		"Expectations":     v.Expectations,
		"RecaptchaSiteKey": v.SiteKey,
	})
}

// Privacy renders the privacy policy.
func (h *Handlers) Privacy(c *gin.Context) {
	h.render(c, http.StatusOK, tmplPrivacy, "Privacy Policy - Domain Finder", nil)
}

// TermsUK renders the UK terms of service.
func (h *Handlers) TermsUK(c *gin.Context) {
	h.render(c, http.StatusOK, tmplTerms, "Terms of Service (UK) - Domain Finder", nil)
}

// ComplaintsAppeals renders the complaints and appeals procedure.
func (h *Handlers) ComplaintsAppeals(c *gin.Context) {
	h.render(c, http.StatusOK, tmplComplaint, "Complaints & Appeals - Domain Finder", nil)
}

// NotFound renders the 404 page for browsers and the JSON envelope for
// everything else.
func (h *Handlers) NotFound(c *gin.Context) {
	if wantsHTML(c) {
		h.render(c, http.StatusNotFound, tmplNotFound, "Page Not Found - Domain Finder", nil)
		c.Abort()
		return
	}
	fail(c, http.StatusNotFound, ErrCodeNotFound, "route not found")
}

// wantsHTML reports whether a GET request prefers text/html.
func wantsHTML(c *gin.Context) bool {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		return false
	}
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}
