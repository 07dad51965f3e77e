// Package server 提供占位符替换的 HTTP 接口。
//
// 端点：
//   - GET /health - 健康检查
//   - POST /replace - 替换请求体中 text 的占位符，数据源为请求中的 properties
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/lwmacct/251207-go-pkg-placeholder/internal/api"
	"github.com/lwmacct/251207-go-pkg-placeholder/internal/config"
	"github.com/lwmacct/251207-go-pkg-placeholder/internal/version"
	"github.com/lwmacct/251207-go-pkg-placeholder/pkg/placeholder"
)

// MaxBodyBytes 请求体大小上限。
const MaxBodyBytes = 1 << 20

// Handler HTTP 处理器。
//
// 两个 Helper 在创建时构造，之后只读，可被并发请求共享。
type Handler struct {
	lenient *placeholder.Helper
	strict  *placeholder.Helper
	// strictByDefault 请求未指定 strict 时使用的策略
	strictByDefault bool
	// env 非 nil 时请求属性缺失会回退到服务端环境变量
	env placeholder.Resolver
	mux *http.ServeMux
}

// NewHandler 根据配置创建 Handler。
//
// cfg.Server 中的嵌套层数、解析次数与结果长度限制作用于每个请求，
// 超出时返回 422 与 limit_exceeded 错误码。
func NewHandler(cfg config.Config) (*Handler, error) {
	pc := cfg.Placeholder
	limits := cfg.Server.Limits()

	pc.Strict = false
	lenient, err := pc.NewHelper(limits...)
	if err != nil {
		return nil, fmt.Errorf("create placeholder helper: %w", err)
	}
	pc.Strict = true
	strict, err := pc.NewHelper(limits...)
	if err != nil {
		return nil, fmt.Errorf("create placeholder helper: %w", err)
	}

	h := &Handler{
		lenient:         lenient,
		strict:          strict,
		strictByDefault: cfg.Placeholder.Strict,
		mux:             http.NewServeMux(),
	}
	if cfg.Server.Env {
		h.env = envResolver(cfg.Server.EnvPrefix)
	}
	h.mux.HandleFunc("GET "+api.PathHealth, h.handleHealth)
	h.mux.HandleFunc("POST "+api.PathReplace, h.handleReplace)

	return h, nil
}

// ServeHTTP 实现 http.Handler，为每个响应附加 X-Request-Id。
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(api.HeaderRequestID)
	if id == "" {
		id = uuid.Must(uuid.NewV4()).String()
	}
	w.Header().Set(api.HeaderRequestID, id)

	slog.Debug("Handling request", "method", r.Method, "path", r.URL.Path, "request_id", id)
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok", Version: version.GetVersion()})
}

func (h *Handler) handleReplace(w http.ResponseWriter, r *http.Request) {
	var req api.ReplaceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{
			Error: fmt.Sprintf("decode request: %v", err),
			Code:  api.CodeBadRequest,
		})

		return
	}

	helper := h.lenient
	if (req.Strict == nil && h.strictByDefault) || (req.Strict != nil && *req.Strict) {
		helper = h.strict
	}

	var resolver placeholder.Resolver = placeholder.MapResolver(req.Properties)
	if h.env != nil {
		resolver = placeholder.ChainResolver{resolver, h.env}
	}

	result, err := helper.Replace(req.Text, resolver)
	if err != nil {
		status, resp := errorResponse(err)
		slog.Warn("Replace failed", "error", err, "request_id", w.Header().Get(api.HeaderRequestID))
		writeJSON(w, status, resp)

		return
	}

	writeJSON(w, http.StatusOK, api.ReplaceResponse{Result: result})
}

// envResolver 只暴露名称以 prefix 开头的环境变量。
func envResolver(prefix string) placeholder.Resolver {
	env := placeholder.EnvResolver()
	if prefix == "" {
		return env
	}

	return placeholder.ResolverFunc(func(name string) (string, bool) {
		if !strings.HasPrefix(name, prefix) {
			return "", false
		}
		return env.ResolvePlaceholder(name)
	})
}

// errorResponse 将替换错误映射为 HTTP 状态码与错误码。
func errorResponse(err error) (int, api.ErrorResponse) {
	var circular *placeholder.CircularReferenceError
	if errors.As(err, &circular) {
		return http.StatusUnprocessableEntity, api.ErrorResponse{
			Error:       err.Error(),
			Code:        api.CodeCircularReference,
			Placeholder: circular.Placeholder,
		}
	}

	var unresolvable *placeholder.UnresolvableError
	if errors.As(err, &unresolvable) {
		return http.StatusUnprocessableEntity, api.ErrorResponse{
			Error:       err.Error(),
			Code:        api.CodeUnresolvable,
			Placeholder: unresolvable.Placeholder,
		}
	}

	if errors.Is(err, placeholder.ErrLimitExceeded) {
		return http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error(), Code: api.CodeLimitExceeded}
	}

	return http.StatusInternalServerError, api.ErrorResponse{Error: err.Error(), Code: api.CodeInternal}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Write response failed", "error", err)
	}
}
