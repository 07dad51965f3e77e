// Package version 提供应用名称与版本信息。
//
// 版本号在构建时注入：
//
//	go build -ldflags "-X github.com/lwmacct/251207-go-pkg-placeholder/internal/version.Version=v1.2.3"
package version

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名称，同时用于默认配置文件名（.placeholder.yaml）。
const AppRawName = "placeholder"

// Version 构建时注入的版本号。
var Version = ""

// GetVersion 返回版本号，未注入时读取模块构建信息。
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "(devel)"
}

// Command 打印版本信息。
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s\n", AppRawName, GetVersion())
		return err
	},
}
