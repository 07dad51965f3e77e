package client

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-placeholder/internal/api"
	"github.com/lwmacct/251207-go-pkg-placeholder/internal/client"
	"github.com/lwmacct/251207-go-pkg-placeholder/internal/command"
	"github.com/lwmacct/251207-go-pkg-placeholder/internal/config"
	"github.com/lwmacct/251207-go-pkg-placeholder/internal/version"
	"github.com/lwmacct/251207-go-pkg-placeholder/pkg/cfgm"
)

// newClient 根据配置创建客户端。
//
// 子命令未定义 client-* flags，需从父命令读取。
func newClient(cmd *cli.Command) (*client.Client, error) {
	parent := cmd
	if p := cmd.Lineage(); len(p) > 1 {
		parent = p[1]
	}

	cfg, err := cfgm.LoadCmd(parent, config.DefaultConfig(), version.AppRawName)
	if err != nil {
		return nil, err
	}

	return client.New(cfg.Client.URL, cfg.Client.Timeout, cfg.Client.Retries), nil
}

func healthAction(ctx context.Context, cmd *cli.Command) error {
	svc, err := newClient(cmd)
	if err != nil {
		return err
	}

	health, err := svc.Health(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.Root().Writer, "status: %s, version: %s\n", health.Status, health.Version)

	return err
}

func replaceAction(ctx context.Context, cmd *cli.Command) error {
	svc, err := newClient(cmd)
	if err != nil {
		return err
	}

	props, err := command.Properties(cmd)
	if err != nil {
		return err
	}

	text, fromArgs, err := command.ReadText(cmd)
	if err != nil {
		return err
	}

	req := api.ReplaceRequest{Text: text, Properties: props}
	if cmd.IsSet("strict") {
		strict := cmd.Bool("strict")
		req.Strict = &strict
	}

	result, err := svc.Replace(ctx, req)
	if err != nil {
		return err
	}

	if fromArgs {
		result += "\n"
	}
	_, err = fmt.Fprint(cmd.Root().Writer, result)

	return err
}
