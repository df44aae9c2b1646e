package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"officeholders/internal/config"
)

// app 命令共享状态
type app struct {
	configPath string
	verbose    bool
	build      buildFlags

	cfg  *config.AppConfig
	info config.LoadConfigInfo
	log  *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	build := newBuildCmd(a)

	cmd := &cobra.Command{
		Use:           "officeholders",
		Short:         "教员职务现况报表生成工具",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		// 无子命令时执行 build
		RunE: build.RunE,
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "配置文件路径 (默认: 当前目录或可执行文件目录下的 config.toml)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "输出 debug 日志（含匹配诊断）")
	bindBuildFlags(cmd, a)

	cmd.AddCommand(build)
	cmd.AddCommand(newHistoryCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	return cmd
}

func (a *app) load() error {
	cfg, info, err := config.LoadConfigWithInfo(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.info = info

	log, err := newLogger(cfg.Log, a.verbose)
	if err != nil {
		return err
	}
	a.log = log
	if info.Path != "" {
		log.Debugf("配置文件: %s", info.Path)
	}
	return nil
}

// Execute 运行 CLI，出错时以非零状态退出
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err.Error())
		os.Exit(1)
	}
}
