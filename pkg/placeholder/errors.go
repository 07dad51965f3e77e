package placeholder

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration 表示前缀或后缀缺失。
	ErrInvalidConfiguration = errors.New("placeholder: prefix and suffix must not be empty")

	// ErrNilResolver 表示调用 [Helper.Replace] 时未提供 Resolver。
	ErrNilResolver = errors.New("placeholder: resolver must not be nil")

	// ErrCircularReference 可配合 errors.Is 识别 [CircularReferenceError]。
	ErrCircularReference = errors.New("placeholder: circular reference")

	// ErrUnresolvable 可配合 errors.Is 识别 [UnresolvableError]。
	ErrUnresolvable = errors.New("placeholder: unresolvable")

	// ErrLimitExceeded 可配合 errors.Is 识别 [LimitExceededError]。
	ErrLimitExceeded = errors.New("placeholder: limit exceeded")
)

// CircularReferenceError 占位符在自身解析链上再次出现。
//
// Placeholder 为占位符未经解析的原始内部文本。
type CircularReferenceError struct {
	Placeholder string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("placeholder: circular placeholder reference '%s' in property definitions", e.Placeholder)
}

func (e *CircularReferenceError) Unwrap() error { return ErrCircularReference }

// UnresolvableError 严格模式下占位符既无值也无可用默认值。
type UnresolvableError struct {
	Placeholder string // 已展开的占位符名称
	Value       string // 出错时正在处理的输入文本
}

func (e *UnresolvableError) Error() string {
	return fmt.Sprintf("placeholder: could not resolve placeholder '%s' in value %q", e.Placeholder, e.Value)
}

func (e *UnresolvableError) Unwrap() error { return ErrUnresolvable }

// 超出的限制类型，见 [LimitExceededError]。
const (
	LimitDepth       = "depth"
	LimitResolutions = "resolutions"
	LimitLength      = "length"
)

// LimitExceededError 替换过程超出 [WithMaxDepth]、[WithMaxResolutions] 或 [WithMaxLength] 的限制。
type LimitExceededError struct {
	Limit string // LimitDepth / LimitResolutions / LimitLength
	Max   int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("placeholder: %s limit of %d exceeded", e.Limit, e.Max)
}

func (e *LimitExceededError) Unwrap() error { return ErrLimitExceeded }
