package cfgm

import (
	"maps"

	"github.com/urfave/cli/v3"
)

// options 配置加载选项。
type options struct {
	appName     string // 应用名称，用于生成默认配置路径
	cmd         *cli.Command
	configPaths []string
	baseDir     string // 路径基准目录，用于将相对路径转换为绝对路径
	baseDirSet  bool   // 是否显式设置了 baseDir（区分空字符串和未设置）
	envPrefix   string
	callerSkip  int // FindProjectRoot 的调用栈跳过层数（0 表示使用默认值）

	noPlaceholders     bool              // 是否禁用占位符解析（默认启用）
	placeholderPrefix  string            // 默认 "${"
	placeholderSuffix  string            // 默认 "}"
	valueSeparator     string            // 默认 ":"
	valueSeparatorSet  bool              // 是否显式设置了分隔符（空字符串表示禁用默认值语法）
	strictPlaceholders bool              // 无法解析时返回错误
	properties         map[string]string // 优先级最高的占位符数据源
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
//
// 示例：
//
//	cfgm.Load(defaultConfig,
//	    cfgm.WithAppName("myapp"),  // 自动搜索 .myapp.yaml 等
//	    cfgm.WithCommand(cmd),
//	)
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径。
//
// 按顺序查找，命中首个文件即停止；相对路径会基于 [WithBaseDir] 解析。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithBaseDir 设置配置路径的解析基准。
//
// 默认基准为项目根目录（go.mod 所在目录）；空字符串表示当前工作目录。
// 注意：绝对路径不受影响。
func WithBaseDir(path string) Option {
	return func(o *options) {
		o.baseDir = path
		o.baseDirSet = true
	}
}

// WithCallerSkip 设置定位项目根目录时跳过的调用栈层数。
//
// 相对配置路径默认基于调用者源文件所在模块的 go.mod 目录解析，而非工作目录，
// 因此 go test 在包目录下运行时也能找到仓库根目录的 config.yaml。
// 默认值 2 指向 Load/LoadCmd/MustLoad/MustLoadCmd 的直接调用者，
// 每多一层封装加 1：
//
//	func loadAppConfig() (*config.Config, error) {
//	    return cfgm.Load(config.DefaultConfig(), cfgm.WithCallerSkip(3))
//	}
//
// 设置了 [WithBaseDir] 时不生效。
func WithCallerSkip(skip int) Option {
	return func(o *options) {
		o.callerSkip = skip
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 环境变量命名规则：
//   - 前缀 + 大写的配置 key
//   - 点号 (.) 和连字符 (-) 转为下划线 (_)
//
// 示例 (前缀为 "MYAPP_")：
//   - MYAPP_DEBUG → debug
//   - MYAPP_SERVER_URL → server.url
//   - MYAPP_CLIENT_REV_AUTH_USER → client.rev-auth-user
//
// 注意：通过反射自动生成配置 key 的绑定，只匹配结构体中定义的 key。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithoutPlaceholders 禁用占位符解析，保留原始 ${...} 字符串。
func WithoutPlaceholders() Option {
	return func(o *options) {
		o.noPlaceholders = true
	}
}

// WithPlaceholderSyntax 设置占位符前缀与后缀，默认 "${" 与 "}"。
//
// 示例：
//
//	cfgm.Load(cfg, cfgm.WithPlaceholderSyntax("%(", ")"))  // %(HOME)
func WithPlaceholderSyntax(prefix, suffix string) Option {
	return func(o *options) {
		o.placeholderPrefix = prefix
		o.placeholderSuffix = suffix
	}
}

// WithValueSeparator 设置名称与默认值的分隔符，默认 ":"。
//
// 空字符串表示不支持默认值语法。
func WithValueSeparator(sep string) Option {
	return func(o *options) {
		o.valueSeparator = sep
		o.valueSeparatorSet = true
	}
}

// WithStrictPlaceholders 无法解析且没有默认值的占位符将导致 [Load] 返回错误。
//
// 默认保留原始占位符文本。
func WithStrictPlaceholders() Option {
	return func(o *options) {
		o.strictPlaceholders = true
	}
}

// WithProperties 提供额外的占位符数据源，优先于配置 key 与环境变量。
//
// 可与 [LoadProperties] 组合：
//
//	props, err := cfgm.LoadProperties("secrets.yaml")
//	cfg, err := cfgm.Load(DefaultConfig(), cfgm.WithProperties(props))
func WithProperties(props map[string]string) Option {
	return func(o *options) {
		if o.properties == nil {
			o.properties = make(map[string]string, len(props))
		}
		maps.Copy(o.properties, props)
	}
}
