package main

import (
	"os"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"officeholders/internal/store"
)

// historyEntry 运行记录及其未匹配职位
type historyEntry struct {
	store.Run
	Unmatched []store.UnmatchedPosition `json:"unmatched,omitempty"`
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit     int
		unmatched bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "以 JSON 列出最近的构建记录",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 没有记录过运行时不创建数据库
			if _, err := os.Stat(a.cfg.History.DBPath); errors.Is(err, os.ErrNotExist) {
				return writeJSON(cmd.OutOrStdout(), []historyEntry{})
			}

			s, err := store.New(a.cfg.History.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			runs, err := s.ListRuns(limit)
			if err != nil {
				return err
			}
			out := make([]historyEntry, 0, len(runs))
			for _, r := range runs {
				entry := historyEntry{Run: r}
				if unmatched {
					if entry.Unmatched, err = s.ListUnmatched(r.ID); err != nil {
						return err
					}
				}
				out = append(out, entry)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "最多显示的记录数")
	cmd.Flags().BoolVar(&unmatched, "unmatched", false, "同时列出每次运行的未匹配职位")
	return cmd
}
