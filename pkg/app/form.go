package app

import (
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

// ValidError 单个字段的校验错误
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 以逗号拼接所有错误
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString field -> message
func (v ValidErrors) MapsToString() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid binds the request into v and translates validation errors with the request translator.
// BindAndValid 绑定请求参数并使用请求翻译器翻译校验错误
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors
	err := c.ShouldBind(v)
	if err == nil {
		return true, nil
	}

	verrs, ok := err.(val.ValidationErrors)
	if !ok {
		return false, append(errs, &ValidError{Key: "", Message: err.Error()})
	}

	var trans ut.Translator
	if t, exists := c.Get(TransKey); exists {
		trans, _ = t.(ut.Translator)
	}

	translated := verrs.Translate(trans)
	keys := make([]string, 0, len(translated))
	for key := range translated {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		errs = append(errs, &ValidError{Key: key, Message: translated[key]})
	}
	return false, errs
}
