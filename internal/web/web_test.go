package web

import (
	"io/fs"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/tbourn/go-domain-finder/internal/domain"
)

func renderPage(t *testing.T, r *Renderer, name string, data map[string]any) string {
	t.Helper()
	w := httptest.NewRecorder()
	if err := r.Instance(name, data).Render(w); err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return w.Body.String()
}

func baseData(title string) map[string]any {
	return map[string]any{"PageTitle": title, "Year": 2025, "ContactInfo": (*domain.ContactInfo)(nil)}
}

func TestNewRenderer_AllPagesRender(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if len(r.Templates) != len(Pages) {
		t.Fatalf("templates = %d; want %d", len(r.Templates), len(Pages))
	}
	for _, name := range Pages {
		out := renderPage(t, r, name, baseData("T-"+name))
		if !strings.Contains(out, "<title>T-"+name+"</title>") || !strings.Contains(out, "&copy; 2025") {
			t.Fatalf("%s: layout not applied:\n%s", name, out)
		}
	}
}

func TestRenderer_HomeAndListings(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	home := domain.DefaultHomePage()
	data := baseData("Home")
	data["Home"] = home
	data["ShowAdvancedAnalytics"] = true
	data["FeaturedListings"] = []domain.ListingView{{
		Name:           "<script>x</script>.com",
		FormattedPrice: "$15,000",
		ViewButtonText: "View on Sedo",
		ButtonURL:      "https://sedo.com/x",
		FeaturesList:   []string{"Short"},

		HasExternalListing: true,
	}}
	data["ContactInfo"] = &domain.ContactInfo{EmailValue: "hi@example.com", PhoneValue: "+1 (555) 123-4567"}

	out := renderPage(t, r, "home.html", data)
	for _, want := range []string{
		"<span class='text-primary'>Domain</span>", // trusted title markup
		"&lt;script&gt;x&lt;/script&gt;.com",
		`target="_blank"`,
		"Clean Domains",
		`href="tel:&#43;15551234567"`,
		"hi@example.com",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("home missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<script>x</script>") {
		t.Fatalf("listing name not escaped")
	}

	data = baseData("Domains")
	data["Domains"] = []domain.ListingView{{Name: "a.com"}, {Name: "b.com"}}
	data["DomainCount"] = int64(9)
	data["PriceRange"] = "$500 - $2,500"
	data["HasMore"] = true
	data["PageSize"] = 6
	out = renderPage(t, r, "domains.html", data)
	if !strings.Contains(out, `data-offset="2"`) || !strings.Contains(out, `data-limit="6"`) ||
		!strings.Contains(out, "9 available domains") {
		t.Fatalf("domains page:\n%s", out)
	}
}

func TestRenderer_BlogAndContact(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	post := domain.BlogPost{
		ID: 3, Title: "Valuing a .io", ReadTime: "4 min read",
		CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Author:    domain.Author{Name: "Sam Lee"},
		Category:  domain.BlogCategory{Name: "Valuation", Slug: "valuation"},
	}
	data := baseData("Post")
	data["Post"] = post
	data["ContentHTML"] = "<h2 id=\"why\">Why</h2>"
	data["Related"] = []domain.BlogPost{{ID: 4, Title: "Next"}}
	out := renderPage(t, r, "blog_detail.html", data)
	for _, want := range []string{`<h2 id="why">Why</h2>`, ">SL<", "January 02, 2025", `href="/blog/4"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("blog detail missing %q:\n%s", want, out)
		}
	}

	data = baseData("Contact")
	data["Info"] = &domain.ContactInfo{EmailValue: "x@example.com", ShowServices: true, ServicesTitle: "Our Services", ShowWhatToExpect: true, WhatToExpectTitle: "What to Expect"}
	data["Services"] = []domain.ContactService{{Name: "Appraisals"}}
	data["Expectations"] = []domain.ExpectationItem{{Title: "Reply", Description: "Within a day"}}
	data["RecaptchaSiteKey"] = "site-123"
	out = renderPage(t, r, "contact.html", data)
	for _, want := range []string{"api.js?render=site-123", `data-sitekey="site-123"`, "Appraisals", "Within a day", "/static/js/contact.js", `<span class="step">1</span>`} {
		if !strings.Contains(out, want) {
			t.Fatalf("contact missing %q:\n%s", want, out)
		}
	}

	data["Info"] = (*domain.ContactInfo)(nil)
	data["RecaptchaSiteKey"] = ""
	out = renderPage(t, r, "contact.html", data)
	if strings.Contains(out, "recaptcha/api.js") || !strings.Contains(out, "What to Expect") {
		t.Fatalf("contact without info:\n%s", out)
	}
}

func TestParseRenderer_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"t/layout.html":   {Data: []byte(`{{block "content" .}}{{end}}`)},
		"t/partials.html": {Data: []byte(``)},
		"t/bad.html":      {Data: []byte(`{{define "content"}}{{.Oops}`)},
	}
	if _, err := ParseRenderer(fsys, "t", []string{"bad.html"}); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := ParseRenderer(fsys, "t", []string{"missing.html"}); err == nil {
		t.Fatalf("expected missing page error")
	}
}

func TestInitialsAndTelHref(t *testing.T) {
	cases := map[string]string{"Sam Lee": "SL", "anna": "A", "jean luc picard": "JL", "": "", "élise ng": "ÉN"}
	for in, want := range cases {
		if got := Initials(in); got != want {
			t.Fatalf("Initials(%q) = %q; want %q", in, got, want)
		}
	}
	if got := TelHref("+44 (0)20 7946-0958"); got != "tel:+4402079460958" {
		t.Fatalf("TelHref = %q", got)
	}
}

func TestStatic(t *testing.T) {
	for _, p := range []string{"js/main.js", "js/contact.js", "css/site.css"} {
		if _, err := fs.Stat(Static(), p); err != nil {
			t.Fatalf("static %s: %v", p, err)
		}
	}
}
