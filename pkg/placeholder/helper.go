package placeholder

import (
	"log/slog"
	"strings"
)

// wellKnownSimplePrefixes 常见闭合括号到开括号的映射，用于推导 simplePrefix。
var wellKnownSimplePrefixes = map[string]string{
	"}": "{",
	"]": "[",
	")": "(",
}

// Helper 占位符替换器。
//
// 创建后不可变，可安全地被并发调用。
type Helper struct {
	prefix             string
	suffix             string
	simplePrefix       string // 嵌套检测使用的前缀片段
	separator          string
	hasSeparator       bool
	ignoreUnresolvable bool
	logger             *slog.Logger

	// 以下限制为 0 表示不限制
	maxDepth       int
	maxResolutions int
	maxLength      int
}

// Option Helper 构造选项。
type Option func(*Helper)

// WithValueSeparator 设置名称与默认值之间的分隔符，例如 ":"。
//
// 空字符串等同于不设置。
func WithValueSeparator(sep string) Option {
	return func(h *Helper) {
		h.separator = sep
		h.hasSeparator = sep != ""
	}
}

// WithIgnoreUnresolvable 设置无法解析的占位符是否原样保留（默认 true）。
//
// 为 false 时返回 [UnresolvableError]。
func WithIgnoreUnresolvable(ignore bool) Option {
	return func(h *Helper) {
		h.ignoreUnresolvable = ignore
	}
}

// WithLogger 设置调试日志输出，默认使用 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(h *Helper) {
		h.logger = logger
	}
}

// WithMaxDepth 限制占位符嵌套层数，名称与值中的递归展开都计入。
//
// 处理不可信输入时应设置：每层嵌套都要重新扫描剩余文本，
// 耗时随嵌套层数与文本长度的乘积增长。
func WithMaxDepth(n int) Option {
	return func(h *Helper) {
		h.maxDepth = n
	}
}

// WithMaxResolutions 限制单次 Replace 中解析占位符的总次数。
//
// 互相引用的属性（a=${b}${b}, b=${c}${c} ...）可使解析次数按指数增长。
func WithMaxResolutions(n int) Option {
	return func(h *Helper) {
		h.maxResolutions = n
	}
}

// WithMaxLength 限制替换过程中任一层结果的字节长度。
//
// 只检查发生了替换的层级，不含占位符或全部保留的文本原样返回。
func WithMaxLength(n int) Option {
	return func(h *Helper) {
		h.maxLength = n
	}
}

// New 创建 Helper。
//
// 不传选项时：无默认值分隔符，无法解析的占位符原样保留。
// prefix 或 suffix 为空时返回 [ErrInvalidConfiguration]。
func New(prefix, suffix string, opts ...Option) (*Helper, error) {
	if prefix == "" || suffix == "" {
		return nil, ErrInvalidConfiguration
	}

	h := &Helper{
		prefix:             prefix,
		suffix:             suffix,
		simplePrefix:       prefix,
		ignoreUnresolvable: true,
	}
	if simple, ok := wellKnownSimplePrefixes[suffix]; ok && strings.HasSuffix(prefix, simple) {
		h.simplePrefix = simple
	}

	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}

	return h, nil
}

// MustNew 调用 [New] 并在失败时 panic，适合包级变量初始化。
func MustNew(prefix, suffix string, opts ...Option) *Helper {
	h, err := New(prefix, suffix, opts...)
	if err != nil {
		panic(err)
	}

	return h
}

// Prefix 返回占位符前缀。
func (h *Helper) Prefix() string { return h.prefix }

// Suffix 返回占位符后缀。
func (h *Helper) Suffix() string { return h.suffix }

// SimplePrefix 返回嵌套检测使用的前缀片段。
//
// 例如 "${" + "}" 推导为 "{"，"%(" + ")" 推导为 "("。
func (h *Helper) SimplePrefix() string { return h.simplePrefix }

// ValueSeparator 返回默认值分隔符及其是否已配置。
func (h *Helper) ValueSeparator() (string, bool) { return h.separator, h.hasSeparator }

// IgnoreUnresolvable 报告无法解析的占位符是否原样保留。
func (h *Helper) IgnoreUnresolvable() bool { return h.ignoreUnresolvable }

// findPlaceholderEndIndex 返回与 start 处前缀匹配的后缀位置，未找到返回 -1。
//
// 扫描时遇到 simplePrefix 视为进入内层占位符，内层的后缀不作为结束位置。
func (h *Helper) findPlaceholderEndIndex(buf string, start int) int {
	index := start + len(h.prefix)
	nested := 0
	for index < len(buf) {
		switch {
		case strings.HasPrefix(buf[index:], h.suffix):
			if nested == 0 {
				return index
			}
			nested--
			index += len(h.suffix)
		case strings.HasPrefix(buf[index:], h.simplePrefix):
			nested++
			index += len(h.simplePrefix)
		default:
			index++
		}
	}

	return -1
}
