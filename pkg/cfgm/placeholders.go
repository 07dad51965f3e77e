package cfgm

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/lwmacct/251207-go-pkg-placeholder/pkg/placeholder"
)

const (
	defaultPlaceholderPrefix = "${"
	defaultPlaceholderSuffix = "}"
	defaultValueSeparator    = ":"
)

// newPlaceholderHelper 根据选项构造占位符替换器。
func newPlaceholderHelper(o *options) (*placeholder.Helper, error) {
	prefix, suffix := o.placeholderPrefix, o.placeholderSuffix
	if prefix == "" && suffix == "" {
		prefix, suffix = defaultPlaceholderPrefix, defaultPlaceholderSuffix
	}

	sep := defaultValueSeparator
	if o.valueSeparatorSet {
		sep = o.valueSeparator
	}

	return placeholder.New(prefix, suffix,
		placeholder.WithValueSeparator(sep),
		placeholder.WithIgnoreUnresolvable(!o.strictPlaceholders),
	)
}

// configResolver 返回配置解析使用的数据源链。
//
// 查找顺序：
//  1. [WithProperties] 提供的属性
//  2. 配置自身的 key（如 ${server.addr}）
//  3. 进程环境变量
func configResolver(o *options, config map[string]any) placeholder.Resolver {
	return placeholder.ChainResolver{
		placeholder.MapResolver(o.properties),
		placeholder.MapResolver(flattenMap(config)),
		placeholder.EnvResolver(),
	}
}

// resolvePlaceholders 展开配置树中所有字符串叶子节点的占位符。
//
// 引用其他 key 时读取的是展开前的原始值，嵌套占位符由替换器递归处理。
func resolvePlaceholders(o *options, config map[string]any) error {
	helper, err := newPlaceholderHelper(o)
	if err != nil {
		return err
	}

	resolver := configResolver(o, config)
	count := 0
	err = walkStrings(config, "", func(path, value string) (string, error) {
		resolved, err := helper.Replace(value, resolver)
		if err != nil {
			return "", fmt.Errorf("resolve placeholder in %s: %w", path, err)
		}
		if resolved != value {
			count++
		}

		return resolved, nil
	})
	if err != nil {
		return err
	}

	slog.Debug("Resolved config placeholders", "count", count, "strict", o.strictPlaceholders)

	return nil
}

// walkStrings 深度优先遍历配置树，用 fn 的返回值替换每个字符串叶子。
func walkStrings(node map[string]any, prefix string, fn func(path, value string) (string, error)) error {
	for key, value := range node {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		replaced, err := walkValue(value, path, fn)
		if err != nil {
			return err
		}
		node[key] = replaced
	}

	return nil
}

func walkValue(value any, path string, fn func(path, value string) (string, error)) (any, error) {
	switch typed := value.(type) {
	case string:
		return fn(path, typed)
	case map[string]any:
		return typed, walkStrings(typed, path, fn)
	case []any:
		for i := range typed {
			replaced, err := walkValue(typed[i], path+"."+strconv.Itoa(i), fn)
			if err != nil {
				return nil, err
			}
			typed[i] = replaced
		}

		return typed, nil
	case []string:
		for i := range typed {
			replaced, err := fn(path+"."+strconv.Itoa(i), typed[i])
			if err != nil {
				return nil, err
			}
			typed[i] = replaced
		}

		return typed, nil
	default:
		return value, nil
	}
}

// LoadProperties 读取 YAML/JSON 文件并展开为 "a.b.c" 形式的属性表。
//
// 非字符串叶子使用 fmt 格式化，列表元素以下标作为 key（如 hosts.0）。
// 返回值可直接用于 [WithProperties] 或 [placeholder.MapResolver]。
func LoadProperties(path string) (map[string]string, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
	if err != nil {
		return nil, fmt.Errorf("read properties %s: %w", path, err)
	}

	data, err := parseConfigBytes(path, content)
	if err != nil {
		return nil, fmt.Errorf("parse properties %s: %w", path, err)
	}

	return flattenMap(data), nil
}
