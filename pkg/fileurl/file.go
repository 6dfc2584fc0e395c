// Package fileurl 文件路径工具
package fileurl

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of dst
// CreatePath 创建 dst 所在目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// EnsureDirs 创建目录列表，空路径与 "." 跳过
func EnsureDirs(perm os.FileMode, dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, perm); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}
	return nil
}

// WriteIfMissing writes content to dst unless it already exists. Returns true when written.
// WriteIfMissing dst 不存在时写入 content，写入时返回 true
func WriteIfMissing(dst string, content []byte, perm os.FileMode) (bool, error) {
	if IsExist(dst) {
		return false, nil
	}
	if err := CreatePath(dst, os.ModePerm); err != nil {
		return false, errors.Wrap(err, "create config path")
	}
	if err := os.WriteFile(dst, content, perm); err != nil {
		return false, errors.Wrap(err, "write file")
	}
	return true, nil
}
