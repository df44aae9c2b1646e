package importer

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/go-faster/errors"
	"golang.org/x/text/unicode/norm"
)

// Inputs 本次运行使用的输入文件
type Inputs struct {
	RawPath   string
	CanonPath string
}

// DiscoverInputs 在 dir 中查找输入文件
// 原始表取匹配 rawPattern 的文件名中字典序最大者（文件名内含日期时间）；基准表按文件名精确匹配
// 文件名先做 NFC 规范化再比较，macOS 卷上的 NFD 韩文文件名也能匹配
func DiscoverInputs(dir, rawPattern, canonFile string) (Inputs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Inputs{}, errors.Wrapf(err, "read input dir %q", dir)
	}

	pattern := norm.NFC.String(rawPattern)
	canonName := norm.NFC.String(canonFile)

	type candidate struct {
		key  string
		name string
	}
	var (
		raws  []candidate
		canon string
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		key := norm.NFC.String(name)
		ok, err := filepath.Match(pattern, key)
		if err != nil {
			return Inputs{}, errors.Wrapf(err, "bad raw pattern %q", rawPattern)
		}
		if ok {
			raws = append(raws, candidate{key: key, name: name})
		}
		if key == canonName && canon == "" {
			canon = name
		}
	}

	if len(raws) == 0 {
		return Inputs{}, &MissingInputError{Kind: "raw", Pattern: rawPattern, Dir: dir}
	}
	if canon == "" {
		return Inputs{}, &MissingInputError{Kind: "canon", Pattern: canonFile, Dir: dir}
	}

	sort.Slice(raws, func(i, j int) bool { return raws[i].key < raws[j].key })
	return Inputs{
		RawPath:   filepath.Join(dir, raws[len(raws)-1].name),
		CanonPath: filepath.Join(dir, canon),
	}, nil
}
