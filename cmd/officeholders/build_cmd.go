package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"officeholders/internal/config"
	"officeholders/internal/importer"
	"officeholders/internal/store"
)

// buildFlags 覆盖配置文件的命令行参数
type buildFlags struct {
	dir     string
	out     string
	xlsx    string
	history bool
}

func bindBuildFlags(cmd *cobra.Command, a *app) {
	flags := &a.build
	cmd.Flags().StringVar(&flags.dir, "dir", "", "输入文件目录 (覆盖 input.dir)")
	cmd.Flags().StringVar(&flags.out, "out", "", "JSON 输出路径 (覆盖 output.path)")
	cmd.Flags().StringVar(&flags.xlsx, "xlsx", "", "同时输出 xlsx 报表 (覆盖 output.xlsx_path)")
	cmd.Flags().BoolVar(&flags.history, "history", false, "记录运行历史 (覆盖 history.enabled)")
}

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "读取最新的任命现况表并生成 professor_data.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyBuildFlags(cmd, a.build, a.cfg)
			opts := buildOptions(a.cfg)

			var history *store.Store
			if a.cfg.History.Enabled {
				s, err := store.New(a.cfg.History.DBPath)
				if err != nil {
					return err
				}
				defer func() { _ = s.Close() }()
				history = s
			}

			summary, err := importer.NewCoordinator(a.log.WithField("cmd", "build"), history).Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
	bindBuildFlags(cmd, a)
	return cmd
}

// applyBuildFlags 仅应用显式设置的参数
func applyBuildFlags(cmd *cobra.Command, flags buildFlags, cfg *config.AppConfig) {
	fs := cmd.Flags()
	if fs.Changed("dir") {
		cfg.Input.Dir = flags.dir
	}
	if fs.Changed("out") {
		cfg.Output.Path = flags.out
	}
	if fs.Changed("xlsx") {
		cfg.Output.XLSXPath = flags.xlsx
	}
	if fs.Changed("history") {
		cfg.History.Enabled = flags.history
	}
}

func buildOptions(cfg *config.AppConfig) importer.Options {
	return importer.Options{
		Dir:            cfg.Input.Dir,
		RawPattern:     cfg.Input.RawPattern,
		CanonFile:      cfg.Input.CanonFile,
		CanonSheet:     cfg.Input.CanonSheet,
		HeaderSentinel: cfg.Input.HeaderSentinel,
		HeaderScanRows: cfg.Input.HeaderScanRows,
		OutputPath:     cfg.Output.Path,
		XLSXPath:       cfg.Output.XLSXPath,
		Title:          cfg.Output.Title,
		TraceTitles:    cfg.Match.TraceTitles,
		Suggestions:    cfg.Match.Suggestions,
	}
}

func printSummary(w io.Writer, s *importer.Summary) {
	fmt.Fprintf(w, "原始文件: %s\n", s.RawFile)
	fmt.Fprintf(w, "基准文件: %s\n", s.CanonFile)
	fmt.Fprintf(w, "参考日: %s\n", s.DateLabel)
	fmt.Fprintf(w, "在任记录: %d / %d\n", s.ActiveRows, s.RawRows)
	fmt.Fprintf(w, "匹配: %d / %d\n", s.Matched, s.CanonEntries)
	for _, u := range s.Unmatched {
		fmt.Fprintf(w, "  未匹配: [%s] %s (最高分 %d)\n", u.Canon.Category, u.Canon.Position, u.Score)
	}
	fmt.Fprintf(w, "输出: %s\n", s.OutputPath)
	if s.XLSXPath != "" {
		fmt.Fprintf(w, "输出: %s\n", s.XLSXPath)
	}
	if s.RunID != "" {
		fmt.Fprintf(w, "运行 ID: %s\n", s.RunID)
	}
	fmt.Fprintf(w, "耗时: %s\n", s.Duration.Round(time.Millisecond))
}
