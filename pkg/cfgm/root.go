package cfgm

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// ErrProjectRootNotFound 向上查找时没有遇到 go.mod。
var ErrProjectRootNotFound = errors.New("cfgm: project root (go.mod) not found")

// FindProjectRoot 从调用者源文件所在目录向上查找 go.mod，返回其所在目录。
//
// skip 为调用栈跳过层数：0 表示 FindProjectRoot 的直接调用者。
// 源文件路径不可用时（如 -trimpath 构建）退回到当前工作目录开始查找。
func FindProjectRoot(skip int) (string, error) {
	start := ""
	if _, file, _, ok := runtime.Caller(skip + 1); ok && filepath.IsAbs(file) {
		start = filepath.Dir(file)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = wd
	}

	for dir := start; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrProjectRootNotFound
		}
		dir = parent
	}
}
