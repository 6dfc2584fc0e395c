// Package validator plugs go-playground/validator into gin binding with the service's custom rules.
package validator

import (
	"reflect"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// CustomValidator gin binding.StructValidator 实现
type CustomValidator struct {
	once     sync.Once
	validate *validator.Validate
}

// NewCustomValidator 创建验证器
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

var _ binding.StructValidator = (*CustomValidator)(nil)

// ValidateStruct 校验结构体，非结构体直接通过
func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	if kindOfData(obj) != reflect.Struct {
		return nil
	}
	v.lazyinit()
	return v.validate.Struct(obj)
}

// Engine 返回底层 *validator.Validate
func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.validate
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New()
		v.validate.SetTagName("binding")
		registerCustom(v.validate)
	})
}

func kindOfData(data interface{}) reflect.Kind {
	value := reflect.ValueOf(data)
	kind := value.Kind()
	if kind == reflect.Ptr {
		kind = value.Elem().Kind()
	}
	return kind
}

// syntax hints are language names such as "go", "c++", "objective-c", "f#"
var syntaxPattern = regexp.MustCompile(`^[A-Za-z0-9+#._-]{1,32}$`)

// registerCustom 注册自定义校验规则
func registerCustom(v *validator.Validate) {
	_ = v.RegisterValidation("syntax", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || syntaxPattern.MatchString(s)
	})
	_ = v.RegisterValidation("tagitems", func(fl validator.FieldLevel) bool {
		tags, ok := fl.Field().Interface().([]string)
		if !ok {
			return true
		}
		for _, tag := range tags {
			if tag == "" || len(tag) > 64 {
				return false
			}
		}
		return true
	})
}
