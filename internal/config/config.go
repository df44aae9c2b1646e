package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// FileName 默认配置文件名
const FileName = "config.toml"

// AppConfig 应用配置
type AppConfig struct {
	Input   InputConfig   `toml:"input"`
	Output  OutputConfig  `toml:"output"`
	Match   MatchConfig   `toml:"match"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// InputConfig 输入文件配置
type InputConfig struct {
	Dir            string `toml:"dir" env:"OFFICEHOLDERS_INPUT_DIR"`
	RawPattern     string `toml:"raw_pattern" env:"OFFICEHOLDERS_RAW_PATTERN"`
	CanonFile      string `toml:"canon_file" env:"OFFICEHOLDERS_CANON_FILE"`
	CanonSheet     string `toml:"canon_sheet" env:"OFFICEHOLDERS_CANON_SHEET"`
	HeaderSentinel string `toml:"header_sentinel"`
	HeaderScanRows int    `toml:"header_scan_rows"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	Path     string `toml:"path" env:"OFFICEHOLDERS_OUTPUT"`
	XLSXPath string `toml:"xlsx_path" env:"OFFICEHOLDERS_OUTPUT_XLSX"`
	Title    string `toml:"title"`
}

// MatchConfig 匹配诊断配置
type MatchConfig struct {
	TraceTitles []string `toml:"trace_titles" env:"OFFICEHOLDERS_TRACE_TITLES" envSeparator:","`
	Suggestions int      `toml:"suggestions"`
}

// HistoryConfig 运行记录配置
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" env:"OFFICEHOLDERS_HISTORY"`
	DBPath  string `toml:"db_path" env:"OFFICEHOLDERS_HISTORY_DB"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level" env:"OFFICEHOLDERS_LOG_LEVEL"`
	Format string `toml:"format" env:"OFFICEHOLDERS_LOG_FORMAT"` // text/json
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path     string // 实际读取的配置文件，未读取时为空
	EnvFiles int    // 加载的 .env 文件数量
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Input: InputConfig{
			Dir:            ".",
			RawPattern:     "교원_발령사항_현황_*.xlsx",
			CanonFile:      "구분 및 보직명 기준.xlsx",
			CanonSheet:     "rule",
			HeaderSentinel: "성명",
			HeaderScanRows: 10,
		},
		Output: OutputConfig{
			Path:  "professor_data.json",
			Title: "교 원 보 직 자 현 황",
		},
		Match: MatchConfig{
			TraceTitles: []string{"총장", "대학원 경영학과장"},
			Suggestions: 3,
		},
		History: HistoryConfig{
			Enabled: false,
			DBPath:  filepath.Join("data", "officeholders.db"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// ResolvePath 确定配置文件路径：显式路径优先，其次当前目录，最后可执行文件目录
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, FileName)
}

// LoadEnv 加载存在的 .env 文件（已存在的环境变量不会被覆盖）
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// LoadConfigWithInfo 读取配置文件并应用环境变量覆盖
// 配置文件不存在时使用默认配置；显式指定的文件不存在则报错
func LoadConfigWithInfo(explicitPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	cfg := DefaultConfig()

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		return nil, info, errors.Wrap(err, "load .env")
	}
	info.EnvFiles = n

	path := ResolvePath(explicitPath)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, errors.Wrapf(err, "parse %s", path)
		}
		info.Path = path
	case os.IsNotExist(err) && explicitPath == "":
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, errors.Wrapf(err, "read %s", path)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, info, err
	}
	return cfg, info, nil
}

// ApplyEnv 环境变量覆盖（OFFICEHOLDERS_*）
func ApplyEnv(cfg *AppConfig) error {
	if err := env.Parse(cfg); err != nil {
		return errors.Wrap(err, "parse environment")
	}
	return nil
}

// SaveConfig 保存配置到指定路径
func SaveConfig(path string, cfg *AppConfig) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal 序列化为 TOML
func Marshal(cfg *AppConfig) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "marshal config")
	}
	return data, nil
}
