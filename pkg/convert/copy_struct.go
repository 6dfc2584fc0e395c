package convert

import (
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// StructAssign copies same-named fields from src into dst. Slices and maps are shared, not cloned.
// StructAssign 把 src 与 dst 同名字段的值复制到 dst 中，切片与 map 为浅拷贝
func StructAssign(src any, dst any) error {
	if err := copier.CopyWithOption(dst, src, copier.Option{IgnoreEmpty: false}); err != nil {
		return errors.Wrap(err, "copy struct failed")
	}
	return nil
}
