package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/render"
)

// TextBusy answers a submit that arrives while the previous one is sending.
const TextBusy = "Your previous message is still being sent."

// resetTrigger is the HTMX event that clears the form's fields.
const resetTrigger = "contact-reset"

// handleContact submits the form of the visitor's session and answers with
// the message element that replaces #form-message.
func (s *Server) handleContact(c *gin.Context) {
	var sub contact.Submission
	if err := c.ShouldBind(&sub); err != nil {
		s.logger.Warn("binding contact form", "error", err)
	}

	cookie, _ := c.Cookie(sessionCookie)
	id, sess := s.sessions.Get(cookie)
	if id != cookie {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	}

	res, err := sess.form.Submit(c.Request.Context(), sub)
	if errors.Is(err, contact.ErrBusy) {
		// site.js swaps 409 replies in like successful ones.
		s.writeFormMessage(c, http.StatusConflict, render.FormMessage{
			Kind:         string(contact.MessageError),
			Text:         TextBusy,
			DismissAfter: sess.form.DismissAfter().Milliseconds(),
		})
		return
	}
	if err != nil {
		s.pageError(c, err)
		return
	}

	if res.Outcome == contact.OutcomeSent && sess.view.takeReset() {
		c.Header("HX-Trigger", resetTrigger)
	}
	s.writeFormMessage(c, http.StatusOK, render.FormMessage{
		Kind:         string(res.Kind),
		Text:         res.Text,
		DismissAfter: sess.form.DismissAfter().Milliseconds(),
	})
}

func (s *Server) writeFormMessage(c *gin.Context, status int, msg render.FormMessage) {
	markup, err := s.renderer.String(render.ViewFormMessage, msg)
	if err != nil {
		s.pageError(c, err)
		return
	}
	c.Data(status, htmlContentType, []byte(markup))
}
