// Package api 定义 HTTP 服务端与客户端共享的请求/响应结构。
package api

// 路径与请求头。
const (
	PathHealth  = "/health"
	PathReplace = "/replace"

	HeaderRequestID = "X-Request-Id"
)

// 错误码。
const (
	CodeBadRequest        = "bad_request"
	CodeCircularReference = "circular_reference"
	CodeUnresolvable      = "unresolvable"
	CodeLimitExceeded     = "limit_exceeded"
	CodeInternal          = "internal"
)

// ReplaceRequest 占位符替换请求。
type ReplaceRequest struct {
	Text       string            `json:"text"`
	Properties map[string]string `json:"properties,omitempty"`
	// Strict 覆盖服务端默认的无法解析策略，nil 表示使用服务端配置。
	Strict *bool `json:"strict,omitempty"`
}

// ReplaceResponse 占位符替换结果。
type ReplaceResponse struct {
	Result string `json:"result"`
}

// HealthResponse 健康检查结果。
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse 错误响应。
type ErrorResponse struct {
	Error       string `json:"error"`
	Code        string `json:"code"`
	Placeholder string `json:"placeholder,omitempty"`
}
