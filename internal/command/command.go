// Package command 提供命令行各子命令共享的默认配置与 flags。
package command

import (
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-placeholder/internal/config"
	"github.com/lwmacct/251207-go-pkg-placeholder/pkg/cfgm"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// PlaceholderFlags 返回占位符语法相关 flags，对应配置 placeholder.*。
//
// 每次调用返回新的实例，flag 不能在多个命令间共享。
func PlaceholderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "placeholder-prefix",
			Value: Defaults.Placeholder.Prefix,
			Usage: "占位符前缀",
		},
		&cli.StringFlag{
			Name:  "placeholder-suffix",
			Value: Defaults.Placeholder.Suffix,
			Usage: "占位符后缀",
		},
		&cli.StringFlag{
			Name:  "placeholder-separator",
			Value: Defaults.Placeholder.Separator,
			Usage: "默认值分隔符，空字符串表示禁用",
		},
		&cli.BoolFlag{
			Name:  "placeholder-strict",
			Value: Defaults.Placeholder.Strict,
			Usage: "无法解析的占位符视为错误",
		},
	}
}

// PropertyFlags 返回属性来源 flags：--set key=value 与 --props file。
func PropertyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "set",
			Aliases: []string{"D"},
			Usage:   "设置属性 key=value，可重复",
		},
		&cli.StringSliceFlag{
			Name:  "props",
			Usage: "从 YAML/JSON 文件读取属性，可重复，后者覆盖前者",
		},
	}
}

// Properties 合并 --props 文件与 --set 参数，--set 优先。
func Properties(cmd *cli.Command) (map[string]string, error) {
	props := make(map[string]string)
	for _, path := range cmd.StringSlice("props") {
		fileProps, err := cfgm.LoadProperties(path)
		if err != nil {
			return nil, err
		}
		maps.Copy(props, fileProps)
	}

	for _, kv := range cmd.StringSlice("set") {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid property %q, expected key=value", kv)
		}
		props[key] = value
	}

	return props, nil
}

// ReadText 读取待处理文本：优先 --file，其次位置参数（以空格连接），最后读取标准输入。
//
// 第二个返回值表示文本是否来自位置参数（输出时需补换行）。
func ReadText(cmd *cli.Command) (string, bool, error) {
	if path := cmd.String("file"); path != "" {
		content, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
		if err != nil {
			return "", false, fmt.Errorf("read input: %w", err)
		}
		return string(content), false, nil
	}

	if cmd.Args().Present() {
		return strings.Join(cmd.Args().Slice(), " "), true, nil
	}

	var buf strings.Builder
	if _, err := io.Copy(&buf, cmd.Root().Reader); err != nil {
		return "", false, fmt.Errorf("read stdin: %w", err)
	}

	return buf.String(), false, nil
}
