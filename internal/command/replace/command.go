// Package replace 提供本地占位符替换命令。
package replace

import (
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-placeholder/internal/command"
)

// Command 替换命令
var Command = NewCommand()

// NewCommand 创建替换命令。flag 保存解析状态，测试中每次运行应使用新实例。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "replace",
		Usage:     "替换文本中的占位符",
		ArgsUsage: "[text...]",
		Description: `数据源按顺序查找：--set 与 --props 文件（--set 优先）、环境变量（--no-env 禁用）。

示例：
  placeholder replace -D name=World 'Hello, ${name}!'
  placeholder replace --props app.yaml --file template.conf
  echo '${HOME:/root}' | placeholder replace`,
		Action: action,
		Flags: slices.Concat(
			[]cli.Flag{
				&cli.StringFlag{
					Name:    "file",
					Aliases: []string{"f"},
					Usage:   "从文件读取待替换文本",
				},
				&cli.BoolFlag{
					Name:  "no-env",
					Usage: "不使用环境变量作为数据源",
				},
			},
			command.PropertyFlags(),
			command.PlaceholderFlags(),
		),
	}
}
