package replace

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-placeholder/internal/command"
	"github.com/lwmacct/251207-go-pkg-placeholder/internal/config"
	"github.com/lwmacct/251207-go-pkg-placeholder/internal/version"
	"github.com/lwmacct/251207-go-pkg-placeholder/pkg/cfgm"
	"github.com/lwmacct/251207-go-pkg-placeholder/pkg/placeholder"
)

func action(_ context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), version.AppRawName)
	if err != nil {
		return err
	}

	helper, err := cfg.Placeholder.NewHelper()
	if err != nil {
		return err
	}

	props, err := command.Properties(cmd)
	if err != nil {
		return err
	}

	resolver := placeholder.ChainResolver{placeholder.MapResolver(props)}
	if !cmd.Bool("no-env") {
		resolver = append(resolver, placeholder.EnvResolver())
	}

	text, fromArgs, err := command.ReadText(cmd)
	if err != nil {
		return err
	}

	result, err := helper.Replace(text, resolver)
	if err != nil {
		return err
	}
	slog.Debug("Replaced placeholders", "properties", len(props), "env", !cmd.Bool("no-env"))

	if fromArgs {
		result += "\n"
	}
	_, err = fmt.Fprint(cmd.Root().Writer, result)

	return err
}
