// Contact HTTP handler.
//
// POST /ajax/contact accepts the contact form as JSON and answers in the
// shape the contact page script expects:
//
//	{ "success": true,  "message": "..." }
//	{ "success": false, "errors":  { "field": ["..."] } }
//	{ "success": false, "message": "..." }
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-domain-finder/internal/http/middleware"
	"github.com/tbourn/go-domain-finder/internal/services"
)

//
// DTOs
//

// ContactRequest is the JSON payload of the contact form.
type ContactRequest struct {
	Name    string `json:"name" example:"Alice"`
	Email   string `json:"email" example:"alice@example.com"`
	Message string `json:"message" example:"I'm interested in example.com"`
	// Captcha is the reCAPTCHA v3 token.
	Captcha string `json:"captcha" example:"03AFcWeA..."`
}

// ContactResponse is the result of a submission.
type ContactResponse struct {
	Success bool                `json:"success" example:"true"`
	Message string              `json:"message,omitempty" example:"Thank you for your message! We'll get back to you soon."`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// SubmitContact godoc
// @ID          submitContact
// @Summary     Submit the contact form
// @Description Validates the form, checks the reCAPTCHA token, stores the submission and notifies the site owner. Send an Idempotency-Key header to make retries safe.
// @Tags        Contact
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string                   false  "Idempotency key for safe retries"  example(2b0f4c5e-1b7a-4d1e-9a52-0c7f2f0d8a11)
// @Param       body             body    handlers.ContactRequest  true   "Contact form"
//
// @Success     200  {object}  handlers.ContactResponse
// @Failure     400  {object}  handlers.ContactResponse  "Validation failed or malformed body"
// @Failure     429  {object}  handlers.ContactResponse  "Rate limited"
// @Failure     500  {object}  handlers.ContactResponse  "Internal error"
// @Router      /ajax/contact [post]
func (h *Handlers) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		contactFail(c, http.StatusBadRequest, ContactResponse{Message: msgInvalidData})
		return
	}
	key, _ := middleware.GetIdempotencyKey(c)

	_, err := h.contact.Submit(c.Request.Context(), services.ContactInput{
		Name:           req.Name,
		Email:          req.Email,
		Message:        req.Message,
		CaptchaToken:   req.Captcha,
		RemoteIP:       c.ClientIP(),
		IdempotencyKey: key,
	})

	var verr *services.ValidationError
	switch {
	case err == nil:
		ok(c, http.StatusOK, ContactResponse{Success: true, Message: msgContactThanks})
	case errors.As(err, &verr):
		contactFail(c, http.StatusBadRequest, ContactResponse{Errors: verr.Fields})
	default:
		middleware.LoggerFrom(c).Error().Err(err).Msg("contact submission failed")
		_ = c.Error(err)
		contactFail(c, http.StatusInternalServerError, ContactResponse{Message: msgGenericFailure})
	}
}
