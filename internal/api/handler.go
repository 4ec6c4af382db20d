package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/crudnote/internal/config"
	"github.com/jon4hz/crudnote/internal/dom"
	"github.com/jon4hz/crudnote/internal/preference"
	"github.com/jon4hz/crudnote/internal/router"
	"github.com/jon4hz/crudnote/internal/session"
	"github.com/jon4hz/crudnote/internal/storage"
)

// Headers of partial responses. A request with PartialHeader set to "1" gets
// the mounted view only and is never redirected.
const (
	PartialHeader   = "X-Crudnote-Partial"
	PathHeader      = "X-Crudnote-Path"
	NoticeHeader    = "X-Crudnote-Notice"
	BodyClassHeader = "X-Crudnote-Body-Class"
)

type handler struct {
	router *router.Router
	shell  *template.Template
	cfg    *config.Config
}

func newHandler(r *router.Router, shell *template.Template, cfg *config.Config) *handler {
	return &handler{router: r, shell: shell, cfg: cfg}
}

func (h *handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Tab renders a navigation (GET, HEAD) or delivers a DOM event (POST) to the
// view of the request path.
func (h *handler) Tab(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		c.AbortWithStatus(http.StatusMethodNotAllowed)
		return
	}

	ctx := c.Request.Context()
	sess := sessions.Default(c)
	history := router.NewRequestHistory(c.Request.URL.Path)
	doc := dom.NewDocument(h.shell)
	tab := h.router.NewTab(
		history,
		session.New(storage.NewSession(sess)),
		preference.New(storage.NewCookie(c, h.cfg.ThemeMaxAge, h.cfg.SecureCookies)),
		doc,
	)

	if err := tab.Render(ctx); err != nil {
		h.abort(c, err)
		return
	}
	// notices carried over a redirect
	for _, f := range sess.Flashes() {
		if msg, ok := f.(string); ok {
			tab.Notify(msg)
		}
	}

	if c.Request.Method == http.MethodPost {
		ev := dom.Event{
			Target: c.PostForm("target"),
			Type:   c.PostForm("event"),
			Values: c.Request.PostForm,
		}
		// listener failures are already shown to the user
		if err := tab.Dispatch(ctx, ev); err != nil && ctx.Err() != nil {
			h.abort(c, ctx.Err())
			return
		}
	}

	partial := c.GetHeader(PartialHeader) == "1"
	if history.Moved() && !partial {
		for _, msg := range doc.TakeNotices() {
			sess.AddFlash(msg)
		}
		h.save(sess)
		c.Redirect(http.StatusSeeOther, history.Path())
		return
	}
	h.save(sess)

	c.Header("Cache-Control", "no-store")
	var buf bytes.Buffer
	if partial {
		c.Header(PathHeader, history.Path())
		c.Header(BodyClassHeader, doc.BodyClass())
		if notices := doc.Notices(); len(notices) > 0 {
			if data, err := json.Marshal(notices); err == nil {
				c.Header(NoticeHeader, string(data))
			}
		}
		if err := doc.RenderMount(&buf); err != nil {
			h.abort(c, err)
			return
		}
	} else if err := doc.Render(&buf); err != nil {
		h.abort(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *handler) save(sess sessions.Session) {
	if err := sess.Save(); err != nil {
		log.Error("Failed to save session", "error", err)
	}
}

func (h *handler) abort(c *gin.Context, err error) {
	if errors.Is(err, context.Canceled) {
		c.Abort()
		return
	}
	log.Error("Failed to render page", "path", c.Request.URL.Path, "error", err)
	c.AbortWithStatus(http.StatusInternalServerError)
}
