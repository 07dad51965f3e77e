// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - 通过 WithAppName / WithConfigPaths 选项设置
//  3. 环境变量 - 通过 WithEnvPrefix 选项启用
//  4. CLI flags - 通过 WithCommand 选项设置
//
// 合并后，字符串值中的 ${NAME:default} 占位符会被展开。
package config

import (
	"time"

	"github.com/lwmacct/251207-go-pkg-placeholder/pkg/placeholder"
)

// Config 应用配置。
type Config struct {
	Server      ServerConfig      `json:"server" desc:"服务端配置"`
	Client      ClientConfig      `json:"client" desc:"客户端配置"`
	Placeholder PlaceholderConfig `json:"placeholder" desc:"占位符语法"`
}

// ServerConfig 服务端配置。
type ServerConfig struct {
	Addr     string        `json:"addr" desc:"服务器监听地址"`
	Timeout  time.Duration `json:"timeout" desc:"HTTP 读写超时"`
	Idletime time.Duration `json:"idletime" desc:"HTTP 空闲超时"`
	// Env 为 true 时，请求中缺失的属性回退到服务端环境变量。
	// 任何能访问服务的客户端都可以通过 ${NAME} 读取这些变量，
	// 开启时应通过 EnvPrefix 限定可读取的变量名。
	Env       bool   `json:"env" desc:"请求属性缺失时回退到服务端环境变量"`
	EnvPrefix string `json:"env-prefix" desc:"允许读取的环境变量名前缀，空字符串表示不限制"`

	// 以下限制作用于每个替换请求，0 表示不限制
	MaxDepth       int `json:"max-depth" desc:"占位符最大嵌套层数"`
	MaxResolutions int `json:"max-resolutions" desc:"单个请求最多解析的占位符数量"`
	MaxLength      int `json:"max-length" desc:"替换结果最大字节数"`
}

// Limits 转换为 placeholder 限制选项。
func (c ServerConfig) Limits() []placeholder.Option {
	return []placeholder.Option{
		placeholder.WithMaxDepth(c.MaxDepth),
		placeholder.WithMaxResolutions(c.MaxResolutions),
		placeholder.WithMaxLength(c.MaxLength),
	}
}

// ClientConfig 客户端配置。
type ClientConfig struct {
	URL     string        `json:"url" desc:"服务器地址"`
	Timeout time.Duration `json:"timeout" desc:"请求超时时间"`
	Retries int           `json:"retries" desc:"重试次数"`
}

// PlaceholderConfig 占位符语法配置。
type PlaceholderConfig struct {
	Prefix    string `json:"prefix" desc:"占位符前缀"`
	Suffix    string `json:"suffix" desc:"占位符后缀"`
	Separator string `json:"separator" desc:"默认值分隔符，空字符串表示禁用"`
	Strict    bool   `json:"strict" desc:"无法解析的占位符视为错误"`
}

// Options 转换为 placeholder 构造选项。
func (c PlaceholderConfig) Options() []placeholder.Option {
	return []placeholder.Option{
		placeholder.WithValueSeparator(c.Separator),
		placeholder.WithIgnoreUnresolvable(!c.Strict),
	}
}

// NewHelper 根据配置创建占位符替换器，extra 追加在配置生成的选项之后。
func (c PlaceholderConfig) NewHelper(extra ...placeholder.Option) (*placeholder.Helper, error) {
	return placeholder.New(c.Prefix, c.Suffix, append(c.Options(), extra...)...)
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:     ":40117",
			Timeout:  15 * time.Second,
			Idletime: 60 * time.Second,

			MaxDepth:       64,
			MaxResolutions: 10000,
			MaxLength:      4 << 20,
		},
		Client: ClientConfig{
			URL:     `${API_BASE_URL:http://localhost:40117}`,
			Timeout: 30 * time.Second,
			Retries: 3,
		},
		Placeholder: PlaceholderConfig{
			Prefix:    "${",
			Suffix:    "}",
			Separator: ":",
		},
	}
}
