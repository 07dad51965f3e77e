// Package client 提供占位符替换服务的客户端命令。
package client

import (
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-placeholder/internal/command"
	"github.com/lwmacct/251207-go-pkg-placeholder/internal/version"
)

// Command 客户端命令
var Command = NewCommand()

// NewCommand 创建客户端命令。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "client",
		Usage: "占位符替换服务客户端",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "client-url",
				Aliases: []string{"s"},
				Value:   command.Defaults.Client.URL,
				Usage:   "服务器地址",
			},
			&cli.DurationFlag{
				Name:  "client-timeout",
				Value: command.Defaults.Client.Timeout,
				Usage: "请求超时时间",
			},
			&cli.IntFlag{
				Name:  "client-retries",
				Value: command.Defaults.Client.Retries,
				Usage: "重试次数",
			},
		},
		Commands: []*cli.Command{
			version.Command,
			{
				Name:   "health",
				Usage:  "检查服务器健康状态",
				Action: healthAction,
			},
			{
				Name:      "replace",
				Usage:     "通过服务端替换占位符",
				ArgsUsage: "[text...]",
				Action:    replaceAction,
				Flags: slices.Concat(
					[]cli.Flag{
						&cli.StringFlag{
							Name:    "file",
							Aliases: []string{"f"},
							Usage:   "从文件读取待替换文本",
						},
						&cli.BoolFlag{
							Name:  "strict",
							Usage: "无法解析的占位符视为错误（默认使用服务端配置）",
						},
					},
					command.PropertyFlags(),
				),
			},
		},
	}
}
