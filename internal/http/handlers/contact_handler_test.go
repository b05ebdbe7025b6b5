package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-domain-finder/internal/http/middleware"
	"github.com/tbourn/go-domain-finder/internal/services"
)

const validContact = `{"name":"Alice","email":"alice@example.com","message":"Interested in example.com","captcha":"tok"}`

func decodeContact(t *testing.T, raw []byte) ContactResponse {
	t.Helper()
	var resp ContactResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("json: %v (%s)", err, raw)
	}
	return resp
}

func TestSubmitContact_Success(t *testing.T) {
	cs := &stubContact{res: &services.ContactResult{}}
	r := newRouter(New(&stubListings{}, cs, &stubContent{}))

	w := do(r, http.MethodPost, "/ajax/contact", body(validContact), "Content-Type", "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	resp := decodeContact(t, w.Body.Bytes())
	if !resp.Success || resp.Message != msgContactThanks || resp.Errors != nil {
		t.Fatalf("resp = %+v", resp)
	}
	if cs.got.Name != "Alice" || cs.got.CaptchaToken != "tok" || cs.got.RemoteIP == "" {
		t.Fatalf("input = %+v", cs.got)
	}
}

func TestSubmitContact_ValidationErrors(t *testing.T) {
	cs := &stubContact{err: &services.ValidationError{Fields: map[string][]string{
		"message": {"Message must be at least 10 characters long."},
	}}}
	r := newRouter(New(&stubListings{}, cs, &stubContent{}))

	w := do(r, http.MethodPost, "/ajax/contact", body(`{"name":"Al","email":"a@b.co","message":"Short"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	resp := decodeContact(t, w.Body.Bytes())
	if resp.Success || len(resp.Errors["message"]) != 1 || resp.Message != "" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestSubmitContact_MalformedBody(t *testing.T) {
	cs := &stubContact{}
	r := newRouter(New(&stubListings{}, cs, &stubContent{}))

	for _, b := range []string{"", "{not json", `{"name": 5}`} {
		w := do(r, http.MethodPost, "/ajax/contact", body(b))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%q: status=%d", b, w.Code)
		}
		if resp := decodeContact(t, w.Body.Bytes()); resp.Success || resp.Message != msgInvalidData {
			t.Fatalf("%q: resp = %+v", b, resp)
		}
	}
	if cs.calls != 0 {
		t.Fatalf("service must not be called for malformed bodies")
	}
}

func TestSubmitContact_InternalErrorHidesDetail(t *testing.T) {
	cs := &stubContact{err: errors.New("disk I/O error at /var/lib/db")}
	r := newRouter(New(&stubListings{}, cs, &stubContent{}))

	w := do(r, http.MethodPost, "/ajax/contact", body(validContact))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	if strings.Contains(w.Body.String(), "disk") {
		t.Fatalf("internal detail leaked: %s", w.Body.String())
	}
	if resp := decodeContact(t, w.Body.Bytes()); resp.Message != msgGenericFailure {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestSubmitContact_PassesIdempotencyKey(t *testing.T) {
	cs := &stubContact{res: &services.ContactResult{Replayed: true}}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))
	r.POST("/ajax/contact", New(&stubListings{}, cs, &stubContent{}).SubmitContact)

	w := do(r, http.MethodPost, "/ajax/contact", body(validContact), middleware.HeaderIdempotencyKey, "retry-key-0001")
	if w.Code != http.StatusOK || cs.got.IdempotencyKey != "retry-key-0001" {
		t.Fatalf("status=%d key=%q", w.Code, cs.got.IdempotencyKey)
	}
}
