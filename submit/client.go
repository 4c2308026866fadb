// Package submit 把导出的排布数据 POST 给外部系统。
// 提交结果只记录日志，不会影响编辑器状态。
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"boxLayout/errors"
	"boxLayout/models"
)

const DefaultTimeout = 10 * time.Second

type Client struct {
	endpoint string
	http     *http.Client
	logger   *log.Logger
	timeout  time.Duration
}

// NewClient endpoint 为空时不提交
func NewClient(endpoint string, timeout time.Duration, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		timeout:  timeout,
	}
}

func (c *Client) Enabled() bool {
	return c.endpoint != ""
}

// Submit 同步提交，非 2xx 响应返回 SUBMISSION_FAILED
func (c *Client) Submit(ctx context.Context, payload models.Payload) error {
	if !c.Enabled() {
		c.logger.Debug("submission disabled, payload dropped", "boxes", payload.Index)
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "序列化失败")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(errors.ErrCodeSubmissionFailed, err, "无法创建请求")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSubmissionFailed, err, "提交到 %s 失败", c.endpoint)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.New(errors.ErrCodeSubmissionFailed, "%s 返回状态 %d", c.endpoint, resp.StatusCode)
	}
	return nil
}

// Send 异步提交，不等待结果。返回的 channel 在提交结束后关闭，调用方可以忽略。
func (c *Client) Send(payload models.Payload) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		start := time.Now()
		if err := c.Submit(ctx, payload); err != nil {
			c.logger.Error("submission failed", "err", err)
			return
		}
		if c.Enabled() {
			c.logger.Info("payload submitted", "boxes", payload.Index, "elapsed", time.Since(start).Round(time.Millisecond))
		}
	}()
	return done
}
