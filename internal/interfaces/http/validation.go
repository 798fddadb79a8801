package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// Validator envuelve go-playground/validator con las reglas propias de la API.
type Validator struct {
	v *validator.Validate
}

// NewValidator registra la etiqueta movement_type y el tipo decimal.Decimal.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Los mensajes usan el nombre JSON del campo, o el de query en los parámetros de URL.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return ""
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("movement_type", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseMovementType(fl.Field().String())
		return ok
	}); err != nil {
		panic(fmt.Sprintf("registrar validación movement_type: %v", err))
	}

	// El tipo custom convierte el precio a float64; escala y rango se revisan sobre el decimal.
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		var price *decimal.Decimal
		switch req := sl.Current().Interface().(type) {
		case dto.CreateProductRequest:
			price = &req.Price
		case dto.UpdateProductRequest:
			price = req.Price
		}
		if price != nil && price.IsPositive() && !entity.ValidPrice(*price) {
			sl.ReportError(*price, "price", "Price", "price_format", "")
		}
	}, dto.CreateProductRequest{}, dto.UpdateProductRequest{})

	return &Validator{v: v}
}

// Struct valida s y devuelve un mensaje por campo inválido.
func (val *Validator) Struct(s any) []string {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(ves))
	for _, fe := range ves {
		out = append(out, fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), rootName(fe))
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: requerido", field)
	case "gt":
		return fmt.Sprintf("%s: debe ser mayor que %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s: debe ser mayor o igual que %s", field, fe.Param())
	case "min", "max":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("%s: valor fuera de rango (%s=%s)", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: longitud fuera de rango (%s=%s)", field, fe.Tag(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s: debe ser menor o igual que %s", field, fe.Param())
	case "price_format":
		return fmt.Sprintf("%s: como máximo %d decimales y %d dígitos enteros", field, entity.PriceScale, entity.PriceIntegerDigits)
	case "movement_type":
		return fmt.Sprintf("%s: debe ser \"entrada\" o \"saída\"", field)
	default:
		return fmt.Sprintf("%s: inválido (%s)", field, fe.Tag())
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// rootName "CreateProductRequest." para quitarlo del namespace.
func rootName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[:i+1]
	}
	return ""
}
