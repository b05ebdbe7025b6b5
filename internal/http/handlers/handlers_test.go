package handlers

import (
	"context"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-domain-finder/internal/domain"
	"github.com/tbourn/go-domain-finder/internal/services"
)

// ---------- stub services ----------

type stubListings struct {
	page      *services.ListingPage
	pageErr   error
	overview  *services.ListingOverview
	ovErr     error
	gotOffset int
	gotLimit  int
	pageCalls int
}

func (s *stubListings) ParsePageParams(offsetRaw, limitRaw string) (int, int, error) {
	return services.NewListingService(nil, nil, 6).ParsePageParams(offsetRaw, limitRaw)
}

func (s *stubListings) Page(ctx context.Context, offset, limit int) (*services.ListingPage, error) {
	s.pageCalls++
	s.gotOffset, s.gotLimit = offset, limit
	return s.page, s.pageErr
}

func (s *stubListings) Overview(ctx context.Context) (*services.ListingOverview, error) {
	return s.overview, s.ovErr
}

type stubContact struct {
	res   *services.ContactResult
	err   error
	got   services.ContactInput
	calls int
}

func (s *stubContact) Submit(ctx context.Context, in services.ContactInput) (*services.ContactResult, error) {
	s.calls++
	s.got = in
	return s.res, s.err
}

type stubContent struct {
	info     *domain.ContactInfo
	infoErr  error
	home     *services.HomeView
	blog     *services.BlogListView
	post     *services.BlogDetailView
	postErr  error
	contact  *services.ContactPageView
	err      error
	gotSlug  string
	gotPost  uint
}

func (s *stubContent) ContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	return s.info, s.infoErr
}
func (s *stubContent) Home(ctx context.Context) (*services.HomeView, error) { return s.home, s.err }
func (s *stubContent) BlogList(ctx context.Context, slug string) (*services.BlogListView, error) {
	s.gotSlug = slug
	return s.blog, s.err
}
func (s *stubContent) BlogDetail(ctx context.Context, id uint) (*services.BlogDetailView, error) {
	s.gotPost = id
	return s.post, s.postErr
}
func (s *stubContent) ContactPage(ctx context.Context) (*services.ContactPageView, error) {
	return s.contact, s.err
}

// ---------- router helpers ----------

// testTemplates registers every page name with a body that echoes the
// fields the tests look at.
func testTemplates() *template.Template {
	root := template.New("")
	for _, name := range []string{
		tmplHome, tmplDomains, tmplBlogList, tmplBlogPost, tmplContact,
		tmplPrivacy, tmplTerms, tmplComplaint, tmplNotFound, tmplError,
	} {
		body := name + `|{{.PageTitle}}|{{with .ContactInfo}}{{.EmailValue}}{{end}}|{{with .PriceRange}}{{.}}{{end}}`
		template.Must(root.New(name).Parse(body))
	}
	return root
}

func newRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(testTemplates())
	r.GET("/", h.Home)
	r.GET("/domains", h.Domains)
	r.GET("/domains/load-more", h.LoadMoreDomains)
	r.GET("/blog", h.BlogList)
	r.GET("/blog/:id", h.BlogDetail)
	r.GET("/contact", h.ContactPage)
	r.POST("/ajax/contact", h.SubmitContact)
	r.GET("/privacy", h.Privacy)
	r.GET("/terms-uk", h.TermsUK)
	r.GET("/complaints-appeals", h.ComplaintsAppeals)
	r.NoRoute(h.NotFound)
	return r
}

func do(r http.Handler, method, path string, body io.Reader, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func body(s string) io.Reader { return strings.NewReader(s) }
