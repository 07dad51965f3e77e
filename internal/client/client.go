// Package client 提供占位符替换服务的 HTTP 客户端。
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lwmacct/251207-go-pkg-placeholder/internal/api"
)

// Client 替换服务客户端。
type Client struct {
	restyCli *resty.Client
}

// New 使用基础地址、超时与重试次数创建客户端。
func New(baseURL string, timeout time.Duration, retries int) *Client {
	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetHeader("Content-Type", "application/json")

	return NewClient(cli)
}

// NewClient 使用预先配置好的 resty 客户端创建 Client。
func NewClient(cli *resty.Client) *Client {
	return &Client{restyCli: cli}
}

// Health 查询服务健康状态。
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var health api.HealthResponse
	rsp, err := c.restyCli.R().
		SetContext(ctx).
		SetResult(&health).
		Get(api.PathHealth)
	if err != nil {
		return nil, err
	}

	if rsp.IsError() {
		return nil, fmt.Errorf("get health failed: %s, got status code: %d", rsp.String(), rsp.StatusCode())
	}

	return &health, nil
}

// Replace 提交替换请求。
//
// 服务端返回的解析错误转换为 [*RemoteError]。
func (c *Client) Replace(ctx context.Context, req api.ReplaceRequest) (string, error) {
	var (
		result  api.ReplaceResponse
		failure api.ErrorResponse
	)
	rsp, err := c.restyCli.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&failure).
		Post(api.PathReplace)
	if err != nil {
		return "", err
	}

	if rsp.IsError() {
		return "", &RemoteError{
			StatusCode: rsp.StatusCode(),
			RequestID:  rsp.Header().Get(api.HeaderRequestID),
			Response:   failure,
		}
	}

	return result.Result, nil
}

// RemoteError 服务端返回的错误。
type RemoteError struct {
	StatusCode int
	RequestID  string
	Response   api.ErrorResponse
}

func (e *RemoteError) Error() string {
	if e.Response.Code == "" {
		return fmt.Sprintf("replace failed with status code %d", e.StatusCode)
	}

	return fmt.Sprintf("replace failed (%s, status code %d): %s", e.Response.Code, e.StatusCode, e.Response.Error)
}
