// Package server exposes a parsed record set over a small HTTP API with
// the same filter, sort and pagination semantics as the CSV pipeline.
package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oleksandr38kebab342/log-csv-git/internal/model"
	"github.com/oleksandr38kebab342/log-csv-git/internal/pipeline"
)

// Server holds the Gin engine and the in-memory record set.
type Server struct {
	engine  *gin.Engine
	records []model.LogRecord
	port    string
}

// recordsResponse is the envelope for /api/records.
type recordsResponse struct {
	Records []model.LogRecord `json:"records"`
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
}

// New creates a server over records listening on port.
func New(records []model.LogRecord, port string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:  engine,
		records: records,
		port:    port,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check.
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"records": len(s.records),
		})
	})

	// Recognized record fields, in export order.
	s.engine.GET("/api/fields", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"fields": model.FieldNames()})
	})

	// Filtered, sorted, paginated record listing.
	s.engine.GET("/api/records", s.handleRecords)
}

func (s *Server) handleRecords(c *gin.Context) {
	criteria := pipeline.Criteria{}
	for _, field := range []string{"status", "remote_addr", "url"} {
		if v := c.Query(field); v != "" {
			criteria[field] = v
		}
	}

	sortBy := c.DefaultQuery("sort_by", "timestamp")
	reverse := c.Query("reverse") == "true"
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 0)

	filtered := pipeline.Filter(s.records, criteria)
	sorted := pipeline.Sort(filtered, sortBy, reverse)

	out := sorted
	if perPage > 0 {
		out = pipeline.Paginate(sorted, page, perPage)
	}
	if out == nil {
		out = []model.LogRecord{}
	}

	c.JSON(http.StatusOK, recordsResponse{
		Records: out,
		Total:   len(sorted),
		Page:    page,
		PerPage: perPage,
	})
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// Handler returns the underlying HTTP handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start runs the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	return s.engine.Run(":" + s.port)
}
