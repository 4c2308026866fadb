// Package server 通过 gin 暴露编辑器接口，浏览器端负责绘制和收集表单输入。
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"boxLayout/config"
	"boxLayout/errors"
	"boxLayout/submit"
)

type Server struct {
	cfg       config.Config
	logger    *log.Logger
	sessions  *Store
	submitter *submit.Client
}

func New(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:       cfg,
		logger:    logger,
		sessions:  NewStore(),
		submitter: submit.NewClient(cfg.SubmitURL, cfg.SubmitTimeout.Duration, logger.WithPrefix("submit")),
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	sessions := r.Group("/sessions")
	sessions.POST("", s.handleCreate)
	sessions.GET("/:id", s.handleGet)
	sessions.DELETE("/:id", s.handleDelete)

	sessions.POST("/:id/boxes", s.handleAddBox)
	sessions.DELETE("/:id/boxes/selected", s.handleDeleteSelected)
	sessions.DELETE("/:id/boxes/overlapping", s.handleDeleteAllSelected)
	sessions.POST("/:id/pointer", s.handlePointer)
	sessions.PUT("/:id/size", s.handleGlobalSize)
	sessions.PUT("/:id/container", s.handleContainerSize)

	sessions.GET("/:id/payload", s.handlePayload)
	sessions.POST("/:id/submit", s.handleSubmit)
	sessions.GET("/:id/chart", s.handleChart)
	sessions.POST("/:id/import", s.handleImport)
	sessions.GET("/:id/export.xlsx", s.handleExportExcel)

	if s.cfg.StaticDir != "" {
		r.Static("/static", s.cfg.StaticDir)
	}
	return r
}

// Run 阻塞直到 ctx 取消，然后优雅关闭
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server running", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeInternal, err, "监听 %s 失败", s.cfg.Addr)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger 用 charmbracelet/log 代替 gin 自带的访问日志
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start).Round(time.Microsecond),
		)
	}
}

// statusFor 错误码到 HTTP 状态码
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeNoFreeSpace:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	c.JSON(status, gin.H{"error": errors.UserMessage(err), "code": code})
}
