package importer

import "fmt"

// MissingInputError 找不到必需的输入文件
type MissingInputError struct {
	Kind    string // raw / canon
	Pattern string
	Dir     string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("no %s file matching %q in %s", e.Kind, e.Pattern, e.Dir)
}
