package server

import (
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/fragment"
	"github.com/Zachkp/folio/internal/site"
)

const htmlContentType = "text/html; charset=utf-8"

func (s *Server) handlePage(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.writePage(c, name)
	}
}

// handleNamedPage serves /pages/<name>.html, the static export's layout.
func (s *Server) handleNamedPage(c *gin.Context) {
	name := strings.TrimSuffix(c.Param("page"), ".html")
	s.writePage(c, name)
}

func (s *Server) writePage(c *gin.Context, name string) {
	doc, err := s.site.Page(c.Request.Context(), name, c.Request.URL.Path, c.Request.URL.Query())
	s.writeDocument(c, doc, err)
}

func (s *Server) writeDocument(c *gin.Context, doc *goquery.Document, err error) {
	if err != nil {
		s.pageError(c, err)
		return
	}
	markup, err := doc.Html()
	if err != nil {
		s.pageError(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(markup))
}

func (s *Server) pageError(c *gin.Context, err error) {
	if errors.Is(err, site.ErrNotFound) {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	s.logger.Error("rendering page failed", "path", c.Request.URL.Path, "error", err)
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// handleBlogPosts answers blog listing requests. Requests that do not come
// from HTMX get the whole blog page in the same state.
func (s *Server) handleBlogPosts(c *gin.Context) {
	if !isHTMX(c) {
		s.writePage(c, site.PageBlog)
		return
	}
	partial, err := s.site.BlogPartial(s.site.BlogState(c.Request.URL.Query()))
	s.writePartial(c, partial, err)
}

func (s *Server) handlePortfolioItems(c *gin.Context) {
	if !isHTMX(c) {
		s.writePage(c, site.PagePortfolio)
		return
	}
	partial, err := s.site.PortfolioPartial(s.site.PortfolioState(c.Request.URL.Query()))
	s.writePartial(c, partial, err)
}

func (s *Server) writePartial(c *gin.Context, p site.Partial, err error) {
	if err != nil {
		s.pageError(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(p.String()))
}

func (s *Server) handlePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	doc, err := s.site.Post(c.Request.Context(), id)
	s.writeDocument(c, doc, err)
}

// handleComponent serves shared fragments for remote fragment fetchers.
func (s *Server) handleComponent(c *gin.Context) {
	file := path.Base(c.Param("file"))
	if !strings.HasSuffix(file, ".html") {
		file = fragment.FileName(file)
	}
	c.FileFromFS(file, http.FS(s.assets.Components))
}
