package placeholder

import "os"

// Resolver 将占位符名称解析为替换值。
//
// 第二个返回值为 false 表示无法解析（与空字符串值区分）。
// 同一次替换中可能对同一名称调用多次，需要缓存时由实现自行处理。
type Resolver interface {
	ResolvePlaceholder(name string) (string, bool)
}

// ResolverFunc 函数适配器。
type ResolverFunc func(name string) (string, bool)

// ResolvePlaceholder 实现 [Resolver]。
func (f ResolverFunc) ResolvePlaceholder(name string) (string, bool) {
	return f(name)
}

// MapResolver 基于 map 的 Resolver，缺失的 key 视为无法解析。nil map 可直接使用。
type MapResolver map[string]string

// ResolvePlaceholder 实现 [Resolver]。
func (m MapResolver) ResolvePlaceholder(name string) (string, bool) {
	val, ok := m[name]
	return val, ok
}

// EnvResolver 返回读取进程环境变量的 Resolver。
//
// 已设置但为空的变量视为可解析（值为空字符串）。
func EnvResolver() Resolver {
	return ResolverFunc(os.LookupEnv)
}

// ChainResolver 按顺序查询多个 Resolver，返回第一个命中的值。
type ChainResolver []Resolver

// ResolvePlaceholder 实现 [Resolver]。
func (c ChainResolver) ResolvePlaceholder(name string) (string, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if val, ok := r.ResolvePlaceholder(name); ok {
			return val, true
		}
	}

	return "", false
}
