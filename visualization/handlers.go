package visualization

import (
	"errors"
	"net/http"

	"scraperdashboard/internal/preview"
	"scraperdashboard/models"

	"github.com/labstack/echo/v4"
)

type indexPage struct {
	Title string
	Files []models.FileEntry
}

// HandleIndex lists every CSV file found in the output directories.
func (s *Server) HandleIndex(c echo.Context) error {
	done := s.perfTracker.StartStep("list")
	files, err := s.lister.List(c.Request().Context())
	done()
	if err != nil {
		return NewInternalError("Failed to list CSV files", err)
	}

	s.logger.Debug("Listing %d CSV files", len(files))
	return s.render(c, "index.html", indexPage{
		Title: s.config.Dashboard.Title,
		Files: files,
	})
}

// HandleView renders the file named by the "file" query parameter.
func (s *Server) HandleView(c echo.Context) error {
	path := c.QueryParam("file")

	done := s.perfTracker.StartStep("parse")
	doc, err := preview.Load(c.Request().Context(), path)
	done()

	switch {
	case errors.Is(err, preview.ErrNotFound):
		return NewNotFoundError()
	case errors.Is(err, preview.ErrParse):
		return NewParseError(err)
	case err != nil:
		return NewInternalError("Failed to read CSV file", err)
	}

	s.logger.Debug("Rendering %s with %d rows", doc.Path, doc.Total())
	return s.render(c, "view.html", doc)
}

// HandleHealth returns server health status
func (s *Server) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": s.version,
	})
}

// render executes the whole template before writing, so a failing template
// never leaves a half-written page behind.
func (s *Server) render(c echo.Context, name string, data interface{}) error {
	done := s.perfTracker.StartStep("render")
	defer done()

	body, err := s.pages.execute(name, data)
	if err != nil {
		return NewInternalError("Failed to render page", err)
	}
	return c.HTMLBlob(http.StatusOK, body)
}
