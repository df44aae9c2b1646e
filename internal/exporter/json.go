// Package exporter 报表落盘：JSON（供前端渲染）与可选的 xlsx
package exporter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"

	"officeholders/internal/model"
)

// EncodeJSON 编码报表：两空格缩进、不转义 HTML、非 ASCII 原样输出、末尾换行
func EncodeJSON(report *model.Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return nil, errors.Wrap(err, "encode report")
	}
	return buf.Bytes(), nil
}

// WriteJSON 原子写出报表（先写临时文件再 rename），失败时不留下半成品
func WriteJSON(path string, report *model.Report) error {
	data, err := EncodeJSON(report)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create output dir %q", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return errors.Wrap(err, "chmod temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "rename to %q", path)
	}
	return nil
}
