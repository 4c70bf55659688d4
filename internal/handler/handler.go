package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-admin/internal/middleware"
	"github.com/clinicore/clinic-admin/internal/session"
	apperrors "github.com/clinicore/clinic-admin/pkg/errors"
)

// Base carries what every page handler needs: the session manager for flash
// messaging and render-time context. Entity handlers embed it.
type Base struct {
	Sessions *session.Manager
}

func NewBase(sessions *session.Manager) *Base {
	return &Base{Sessions: sessions}
}

// Render writes an HTML page. For authenticated requests it injects the
// doctor's display name and pops the one-shot flash slots, so a flash message
// survives exactly one redirect and never reappears.
func (b *Base) Render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if name := middleware.DoctorName(c); name != "" {
		data["DoctorName"] = name
	}
	if token := middleware.SessionToken(c); token != "" {
		success, errMsg, err := b.Sessions.PopFlash(c.Request.Context(), token)
		if err != nil {
			log.Warn().Err(err).Msg("failed to pop flash")
		}
		if success != "" {
			data["Flash"] = success
		}
		if errMsg != "" {
			data["FlashError"] = errMsg
		}
	}
	c.HTML(status, page, data)
}

// Redirect issues the post-mutation redirect. 303 forces the follow-up to be
// a GET even after a POST.
func (b *Base) Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// RedirectWithFlash stores a success message and redirects.
func (b *Base) RedirectWithFlash(c *gin.Context, location, message string) {
	b.flash(c, message, false)
	b.Redirect(c, location)
}

// RedirectWithError stores an error message and redirects.
func (b *Base) RedirectWithError(c *gin.Context, location, message string) {
	b.flash(c, message, true)
	b.Redirect(c, location)
}

func (b *Base) flash(c *gin.Context, message string, isError bool) {
	token := middleware.SessionToken(c)
	if token == "" {
		return
	}
	if err := b.Sessions.Flash(c.Request.Context(), token, message, isError); err != nil {
		log.Warn().Err(err).Msg("failed to store flash")
	}
}

// Fail maps a service error to the page flow: the caller names the listing to
// fall back to, and the doctor sees a flash on it. Not-found covers foreign
// records too, so the message never hints whether the row exists.
func (b *Base) Fail(c *gin.Context, err error, fallback string) {
	switch {
	case apperrors.IsNotFound(err):
		b.RedirectWithError(c, fallback, "Record not found")
	case apperrors.IsValidation(err):
		b.RedirectWithError(c, fallback, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		b.RedirectWithError(c, fallback, "Something went wrong, please try again")
	}
}

// IDParam parses the numeric :id path parameter.
func (b *Base) IDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequest("invalid id", err)
	}
	return id, nil
}
