// Package server поднимает stateless HTTP-интерфейс к инструментам.
// Каждый эндпоинт — чистое преобразование запрос → ответ, без состояния.
package server

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"qakit/internal/browser"
	"qakit/internal/config"
	"qakit/internal/convert"
	"qakit/internal/datagen"
	"qakit/internal/imagediff"
	"qakit/internal/llm"
	"qakit/internal/loganalyzer"
	"qakit/internal/logger"
	"qakit/internal/selector"
)

type Server struct {
	cfg     *config.Cfg
	log     *logger.Zap
	llm     *llm.Client
	fetcher *browser.Fetcher
}

func New(cfg *config.Cfg, log *logger.Zap, llmClient *llm.Client, fetcher *browser.Fetcher) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		llm:     llmClient,
		fetcher: fetcher,
	}
}

func (s *Server) Run(ctx context.Context) error {
	r := s.router()
	addr := fmt.Sprintf("%s:%s", s.cfg.Server.Host, s.cfg.Server.Port)
	s.log.Info("HTTP сервер запущен", zap.String("addr", addr))
	return r.Run(addr)
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Простейший лог-мидлвар
	r.Use(func(c *gin.Context) {
		s.log.Info("HTTP",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/selectors", s.handleSelectors)
	api.POST("/selectors/url", s.handleSelectorsURL)
	api.POST("/testdata", s.handleTestData)
	api.POST("/convert/json-to-csv", s.handleJSONToCSV)
	api.POST("/convert/csv-to-json", s.handleCSVToJSON)
	api.POST("/convert/json-to-xlsx", s.handleJSONToXLSX)
	api.POST("/imagediff", s.handleImageDiff)
	api.POST("/logs/analyze", s.handleLogAnalyze)
	api.POST("/logs/insights", s.handleLogInsights)

	return r
}

func (s *Server) handleSelectors(c *gin.Context) {
	var req struct {
		Markup string `json:"markup" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := selector.Synthesize(req.Markup)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, selector.ErrEmptyInput) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleSelectorsURL(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	markup, err := s.fetcher.FetchHTML(c.Request.Context(), req.URL)
	if err != nil {
		s.log.Error("загрузка страницы", zap.String("url", req.URL), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	res, err := selector.Synthesize(markup)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleTestData(c *gin.Context) {
	var req datagen.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table, err := datagen.Generate(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, table)
}

func (s *Server) handleJSONToCSV(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := convert.JSONToCSV(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", out)
}

func (s *Server) handleCSVToJSON(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := convert.CSVToJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}

func (s *Server) handleJSONToXLSX(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := convert.JSONToXLSX(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="data.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}

func (s *Server) handleImageDiff(c *gin.Context) {
	base, err := formFileBytes(c, "base")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	actual, err := formFileBytes(c, "actual")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := imagediff.Compare(base, actual, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"width":         res.Width,
		"height":        res.Height,
		"diffPixels":    res.DiffPixels,
		"totalPixels":   res.TotalPixels,
		"mismatchRatio": res.MismatchRatio,
		"diffImage":     base64.StdEncoding.EncodeToString(res.DiffImage),
	})
}

func (s *Server) handleLogAnalyze(c *gin.Context) {
	var req struct {
		Log string `json:"log" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := loganalyzer.Analyze(req.Log)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleLogInsights(c *gin.Context) {
	if s.llm == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": llm.ErrNoAPIKey.Error()})
		return
	}

	var req struct {
		Log string `json:"log" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := loganalyzer.Analyze(req.Log)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary := loganalyzer.FormatReport(report)
	insights, err := s.llm.LogInsights(c.Request.Context(), summary, req.Log)
	if err != nil {
		s.log.Error("запрос инсайтов", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":   report,
		"insights": insights,
	})
}

func formFileBytes(c *gin.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("файл %q не передан: %w", field, err)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
