package placeholder

import (
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// resolution 单次 Replace 调用的解析状态。
//
// visited 只记录当前解析链上的占位符，进入时加入、返回时移除，
// 因此同名占位符可以出现在兄弟分支中。
type resolution struct {
	helper   *Helper
	resolver Resolver
	visited  *set.Set[string]

	depth       int // 当前解析链长度
	resolutions int // 已解析的占位符数量
}

// Replace 将 text 中的占位符替换为 resolver 返回的值。
//
// 名称与解析值中的占位符都会递归展开。
// 出现循环引用时返回 [CircularReferenceError]；
// 严格模式下遇到无法解析的占位符返回 [UnresolvableError]。
// 出错时不返回部分结果。
func (h *Helper) Replace(text string, resolver Resolver) (string, error) {
	if resolver == nil {
		return "", ErrNilResolver
	}

	r := &resolution{
		helper:   h,
		resolver: resolver,
		visited:  newVisited(),
	}

	return r.parse(text)
}

// ReplaceProperties 使用 map 作为数据源执行 [Helper.Replace]，缺失的 key 视为无法解析。
func (h *Helper) ReplaceProperties(text string, props map[string]string) (string, error) {
	return h.Replace(text, MapResolver(props))
}

func newVisited() *set.Set[string] {
	return set.New[string](4)
}

func (r *resolution) parse(value string) (string, error) {
	h := r.helper
	start := strings.Index(value, h.prefix)
	if start == -1 {
		return value, nil
	}

	var buf strings.Builder

	// cursor 之前的内容已写入 buf
	cursor := 0
	for start != -1 {
		end := h.findPlaceholderEndIndex(value, start)
		if end == -1 {
			break
		}
		next := end + len(h.suffix)

		resolved, ok, err := r.resolvePlaceholder(value[start+len(h.prefix):end], value)
		if err != nil {
			return "", err
		}
		if ok {
			// 首次替换时才分配，未替换的层级不持有缓冲区
			if cursor == 0 {
				buf.Grow(len(value) - (next - start) + len(resolved))
			}
			buf.WriteString(value[cursor:start])
			buf.WriteString(resolved)
			cursor = next

			if err := r.checkLength(buf.Len()); err != nil {
				return "", err
			}
		}

		start = indexFrom(value, h.prefix, next)
	}
	if cursor == 0 {
		return value, nil
	}
	buf.WriteString(value[cursor:])
	if err := r.checkLength(buf.Len()); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// resolvePlaceholder 解析单个占位符的内部文本 raw。
//
// ok 为 false 表示保留原始占位符文本。
func (r *resolution) resolvePlaceholder(raw, value string) (string, bool, error) {
	r.depth++
	defer func() { r.depth-- }()
	if err := r.checkLimits(); err != nil {
		return "", false, err
	}

	if !r.visited.Insert(raw) {
		return "", false, &CircularReferenceError{Placeholder: raw}
	}
	defer r.visited.Remove(raw)

	name, err := r.parse(raw)
	if err != nil {
		return "", false, err
	}

	val, ok := r.lookup(name)
	if !ok {
		if r.helper.ignoreUnresolvable {
			return "", false, nil
		}
		return "", false, &UnresolvableError{Placeholder: name, Value: value}
	}

	val, err = r.parse(val)
	if err != nil {
		return "", false, err
	}
	r.helper.logger.Debug("Resolved placeholder", "placeholder", name)

	return val, true, nil
}

// checkLimits 在进入一层解析时检查嵌套层数与解析次数。
func (r *resolution) checkLimits() error {
	h := r.helper
	r.resolutions++
	if h.maxDepth > 0 && r.depth > h.maxDepth {
		return &LimitExceededError{Limit: LimitDepth, Max: h.maxDepth}
	}
	if h.maxResolutions > 0 && r.resolutions > h.maxResolutions {
		return &LimitExceededError{Limit: LimitResolutions, Max: h.maxResolutions}
	}

	return nil
}

func (r *resolution) checkLength(n int) error {
	if limit := r.helper.maxLength; limit > 0 && n > limit {
		return &LimitExceededError{Limit: LimitLength, Max: limit}
	}

	return nil
}

// lookup 查询名称对应的值，未命中时按分隔符拆出默认值。
func (r *resolution) lookup(name string) (string, bool) {
	if val, ok := r.resolver.ResolvePlaceholder(name); ok {
		return val, true
	}

	h := r.helper
	if !h.hasSeparator {
		return "", false
	}
	idx := strings.Index(name, h.separator)
	if idx == -1 {
		return "", false
	}
	if val, ok := r.resolver.ResolvePlaceholder(name[:idx]); ok {
		return val, true
	}

	return name[idx+len(h.separator):], true
}

func indexFrom(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}
	idx := strings.Index(s[from:], substr)
	if idx == -1 {
		return -1
	}

	return from + idx
}
