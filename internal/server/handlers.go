package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/piwi3910/FormPanel/internal/engine"
	"github.com/piwi3910/FormPanel/internal/export"
	"github.com/piwi3910/FormPanel/internal/importer"
	"github.com/piwi3910/FormPanel/internal/model"
)

// CatalogResponse describes the active panel catalog.
type CatalogResponse struct {
	StandardWidths []int           `json:"standard_widths"`
	MinCustomWidth int             `json:"min_custom_width"`
	Algorithm      model.Algorithm `json:"algorithm"`
}

// CompareResponse lists one run per candidate primary and the recommended one.
type CompareResponse struct {
	Results []engine.ComparisonResult `json:"results"`
	Best    string                    `json:"best"`
}

type exportFormat struct {
	contentType string
	filename    string
	write       func(io.Writer, model.Result) error
}

var exportFormats = map[string]exportFormat{
	"xlsx":   {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "formpanel-layout.xlsx", export.WriteExcel},
	"pdf":    {"application/pdf", "formpanel-layout.pdf", export.WritePDF},
	"labels": {"application/pdf", "formpanel-labels.pdf", export.WriteLabels},
	"csv":    {"text/csv; charset=utf-8", "formpanel-layout.csv", export.WriteCSV},
	"html":   {"text/html; charset=utf-8", "formpanel-chart.html", export.WriteChart},
	"txt":    {"text/plain; charset=utf-8", "formpanel-layout.txt", export.WriteText},
}

func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(HTTPStatus(err), gin.H{"error": err.Error()})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, CatalogResponse{
		StandardWidths: s.opt.Catalog().Widths(),
		MinCustomWidth: s.opt.Catalog().MinCustomWidth(),
		Algorithm:      s.opt.Settings.Algorithm,
	})
}

// run decodes a canonical request body and optimizes it.
func (s *Server) run(c *gin.Context) (model.Result, bool) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	req, castings, err := importer.DecodeRequest(body)
	if err != nil {
		s.fail(c, err)
		return model.Result{}, false
	}
	res, err := s.opt.Run(castings, req.PrimaryCasting)
	if err != nil {
		s.fail(c, err)
		return model.Result{}, false
	}
	return res, true
}

func (s *Server) handleOptimize(c *gin.Context) {
	res, ok := s.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleCompare(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	castings, err := importer.DecodeCastingsRequest(body)
	if err != nil {
		s.fail(c, err)
		return
	}
	results, err := engine.ComparePrimaries(c.Request.Context(), s.opt, castings, s.workers)
	if err != nil {
		s.fail(c, err)
		return
	}
	resp := CompareResponse{Results: results}
	if i := engine.BestPrimary(results); i >= 0 {
		resp.Best = results[i].Primary
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleExport(c *gin.Context) {
	name := c.Param("format")
	format, ok := exportFormats[name]
	if !ok {
		s.fail(c, &ErrUnsupportedFormat{Format: name})
		return
	}
	res, ok := s.run(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := format.write(&buf, res); err != nil {
		s.logger.Error("export failed", zap.String("format", name), zap.Error(err))
		s.fail(c, fmt.Errorf("failed to export %s: %w", name, err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.filename))
	c.Data(http.StatusOK, format.contentType, buf.Bytes())
}
