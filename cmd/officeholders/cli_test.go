package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"officeholders/internal/config"
)

func writeSheet(t *testing.T, path, sheet string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

func writeConfig(t *testing.T, dir string, mutate func(*config.AppConfig)) string {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Input.Dir = dir
	cfg.Output.Path = filepath.Join(dir, "professor_data.json")
	cfg.History.DBPath = filepath.Join(dir, "data", "history.db")
	if mutate != nil {
		mutate(cfg)
	}
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, config.SaveConfig(path, cfg))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	log, err := newLogger(config.LogConfig{Level: "warn", Format: "json"}, false)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log, err = newLogger(config.LogConfig{Level: "warn"}, true)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	_, err = newLogger(config.LogConfig{Format: "yaml"}, false)
	assert.Error(t, err)
	_, err = newLogger(config.LogConfig{Level: "loud"}, false)
	assert.Error(t, err)
}

func TestConfigCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, func(c *config.AppConfig) { c.Match.Suggestions = 5 })

	out, err := run(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# "+path)
	assert.Contains(t, out, "suggestions = 5")
	assert.Contains(t, out, "교원_발령사항_현황_*.xlsx")
}

func TestConfigInitCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "new.toml")
	cfgPath := writeConfig(t, dir, nil)

	_, err := run(t, "config", "init", target, "--config", cfgPath)
	require.NoError(t, err)
	_, err = os.Stat(target)
	require.NoError(t, err)

	_, err = run(t, "config", "init", target, "--config", cfgPath)
	assert.Error(t, err)
	_, err = run(t, "config", "init", target, "--force", "--config", cfgPath)
	assert.NoError(t, err)
}

func TestRootCmd_BuildAndHistory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSheet(t, filepath.Join(dir, "교원_발령사항_현황_20251126_175246.xlsx"), "Sheet1", [][]interface{}{
		{"성명", "발령직위", "발령시작일", "발령종료일"},
		{"홍길동", "총장", "2023.03.01", ""},
	})
	writeSheet(t, filepath.Join(dir, "구분 및 보직명 기준.xlsx"), "rule", [][]interface{}{
		{"구분", "보 직 명"},
		{"본부", "총장"},
		{"본부", "부총장"},
	})
	cfgPath := writeConfig(t, dir, nil)
	xlsx := filepath.Join(dir, "report.xlsx")

	out, err := run(t, "--config", cfgPath, "--history", "--xlsx", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "匹配: 1 / 2")
	assert.Contains(t, out, "未匹配: [본부] 부총장 (最高分 40)")
	_, err = os.Stat(filepath.Join(dir, "professor_data.json"))
	require.NoError(t, err)
	_, err = os.Stat(xlsx)
	require.NoError(t, err)

	out, err = run(t, "history", "--config", cfgPath, "--unmatched")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "success"`)
	assert.Contains(t, out, `"position": "부총장"`)
}

func TestHistoryCmd_NoDatabase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, nil)

	out, err := run(t, "history", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
	_, err = os.Stat(filepath.Join(dir, "data"))
	assert.True(t, os.IsNotExist(err))
}

func TestRootCmd_MissingInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, nil)

	_, err := run(t, "build", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no raw file")
}
