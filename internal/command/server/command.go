// Package server 提供 HTTP 服务器命令。
package server

import (
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-placeholder/internal/command"
	"github.com/lwmacct/251207-go-pkg-placeholder/internal/version"
)

// Command 服务器命令
var Command = &cli.Command{
	Name:     "server",
	Usage:    "启动占位符替换 HTTP 服务",
	Action:   action,
	Commands: []*cli.Command{version.Command},
	Flags: slices.Concat(
		[]cli.Flag{
			&cli.StringFlag{
				Name:    "server-addr",
				Aliases: []string{"a"},
				Value:   command.Defaults.Server.Addr,
				Usage:   "服务器监听地址",
			},
			&cli.DurationFlag{
				Name:  "server-timeout",
				Value: command.Defaults.Server.Timeout,
				Usage: "HTTP 读写超时",
			},
			&cli.DurationFlag{
				Name:  "server-idletime",
				Value: command.Defaults.Server.Idletime,
				Usage: "HTTP 空闲超时",
			},
			&cli.BoolFlag{
				Name:  "server-env",
				Value: command.Defaults.Server.Env,
				Usage: "请求属性缺失时回退到服务端环境变量（任何客户端均可读取，建议配合 --server-env-prefix）",
			},
			&cli.StringFlag{
				Name:  "server-env-prefix",
				Value: command.Defaults.Server.EnvPrefix,
				Usage: "允许读取的环境变量名前缀",
			},
			&cli.IntFlag{
				Name:  "server-max-depth",
				Value: command.Defaults.Server.MaxDepth,
				Usage: "占位符最大嵌套层数，0 表示不限制",
			},
			&cli.IntFlag{
				Name:  "server-max-resolutions",
				Value: command.Defaults.Server.MaxResolutions,
				Usage: "单个请求最多解析的占位符数量，0 表示不限制",
			},
			&cli.IntFlag{
				Name:  "server-max-length",
				Value: command.Defaults.Server.MaxLength,
				Usage: "替换结果最大字节数，0 表示不限制",
			},
		},
		command.PlaceholderFlags(),
	),
}
