package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator 错误信息中使用 json 字段名，与前端看到的请求体一致
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidateDTO 校验 validate 标签，只返回第一条错误
func ValidateDTO(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return err
	}

	first := vErrs[0]
	if first.Param() != "" {
		return fmt.Errorf("el campo [%s] no cumple la regla [%s=%s]", first.Field(), first.Tag(), first.Param())
	}
	return fmt.Errorf("el campo [%s] no cumple la regla [%s]", first.Field(), first.Tag())
}
