package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pdfsummarizer/internal/config"
	"pdfsummarizer/internal/extractor"
	"pdfsummarizer/internal/models"
	"pdfsummarizer/internal/service/gateway"
)

const (
	serviceName = "pdf-summarizer-agent"
	apiVersion  = "1.0.0"
)

// DocumentExtractor turns raw PDF bytes into an extracted document.
type DocumentExtractor interface {
	Extract(data []byte) (*models.Document, error)
}

// SummaryRunner produces a summary for one extracted document.
type SummaryRunner interface {
	Run(ctx context.Context, doc *models.Document) (string, error)
}

// Handler wires HTTP routes to the extractor and the summarization service.
type Handler struct {
	extractor      DocumentExtractor
	summarizer     SummaryRunner
	maxUploadBytes int64
	maxUploadMB    int64
	webDir         string
}

// NewHandler constructs a Handler instance.
func NewHandler(ex DocumentExtractor, sum SummaryRunner, cfg *config.Config) *Handler {
	return &Handler{
		extractor:      ex,
		summarizer:     sum,
		maxUploadBytes: cfg.MaxFileSizeBytes(),
		maxUploadMB:    cfg.BasicConfig.MaxFileSizeMB,
		webDir:         cfg.BasicConfig.WebDir,
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.MaxMultipartMemory = h.maxUploadBytes
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))

	router.GET("/", h.root)
	router.GET("/health", h.healthCheck)
	router.POST("/upload", h.uploadPDF)
	if h.webDir != "" {
		router.StaticFile("/app", filepath.Join(h.webDir, "index.html"))
	}
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "PDF Summarizer Agent API",
		"version": apiVersion,
		"docs":    "/app",
	})
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}

// uploadPDF validates the upload, then runs extract -> summarize in sequence.
// Every failure maps to a single-line detail payload; nothing escapes to the
// transport layer.
func (h *Handler) uploadPDF(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return
	}

	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Only PDF files are allowed"})
		return
	}
	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Uploaded file is empty"})
		return
	}
	if file.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"detail": fmt.Sprintf("File size exceeds maximum allowed size of %dMB", h.maxUploadMB),
		})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "open uploaded file failed"})
		return
	}
	defer f.Close()

	// Size ceiling re-checked while reading; the declared size is not trusted.
	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "read uploaded file failed"})
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"detail": fmt.Sprintf("File size exceeds maximum allowed size of %dMB", h.maxUploadMB),
		})
		return
	}

	doc, err := h.extractor.Extract(data)
	if err != nil {
		if errors.Is(err, extractor.ErrInvalidPDF) || errors.Is(err, extractor.ErrNoText) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("Error processing PDF: %v", err)})
		return
	}

	summary, err := h.summarizer.Run(c.Request.Context(), doc)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gateway.ErrGatewayUnreachable) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"detail": fmt.Sprintf("Error generating summary: %v", err)})
		return
	}

	c.JSON(http.StatusOK, models.SummaryResult{
		Summary:   summary,
		PageCount: doc.PageCount,
		FileName:  filepath.Base(file.Filename),
	})
}
