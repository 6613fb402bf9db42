package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

const formMediaType = "application/x-www-form-urlencoded"

// BindForm decodes an application/x-www-form-urlencoded body into v.
//
// Fields bind by their `form` tag, or the lowercased field name when the
// tag is absent; `form:"-"` skips a field. Supported kinds are string,
// signed and unsigned ints, floats, bool, pointers to those and slices for
// multi-value keys.
//
// Only WithMaxBodyBytes affects it among the JSON options.
//
//	type SignupRequest struct {
//		Email string `json:"email" form:"email"`
//	}
func BindForm(opts ...JSONOption) func(r *http.Request, v any) error {
	cfg := jsonConfig{maxBytes: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected %s", ErrMissingContentType, formMediaType)
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != formMediaType {
			return fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, contentType, formMediaType)
		}

		r.Body = http.MaxBytesReader(nil, r.Body, cfg.maxBytes)
		if err := r.ParseForm(); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, cfg.maxBytes)
			}
			return fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
		return bindValues(v, "form", r.PostForm)
	}
}

// BindBody picks BindForm for form-encoded requests and BindJSON otherwise,
// so one endpoint accepts both a JSON client and a plain HTML form.
func BindBody(opts ...JSONOption) func(r *http.Request, v any) error {
	jsonBind := BindJSON(opts...)
	formBind := BindForm(opts...)
	return func(r *http.Request, v any) error {
		if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mediaType == formMediaType {
			return formBind(r, v)
		}
		return jsonBind(r, v)
	}
}

func bindValues(v any, tagName string, values map[string][]string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidForm)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidForm)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}
		name, skip := fieldName(sf, tagName)
		if skip {
			continue
		}
		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			continue
		}
		if err := setValue(field, sf.Type, vals); err != nil {
			return fmt.Errorf("%w: field %s: %w", ErrInvalidForm, sf.Name, err)
		}
	}
	return nil
}

func fieldName(sf reflect.StructField, tagName string) (string, bool) {
	tag := sf.Tag.Get(tagName)
	switch tag {
	case "":
		return strings.ToLower(sf.Name), false
	case "-":
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

func setValue(field reflect.Value, typ reflect.Type, vals []string) error {
	switch typ.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(typ.Elem()))
		}
		return setValue(field.Elem(), typ.Elem(), vals)
	case reflect.Slice:
		slice := reflect.MakeSlice(typ, len(vals), len(vals))
		for i, s := range vals {
			if err := setValue(slice.Index(i), typ.Elem(), []string{strings.TrimSpace(s)}); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}

	s := vals[0]
	switch typ.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", s)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", s)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", s)
		}
		field.SetFloat(n)
	case reflect.Bool:
		switch strings.ToLower(s) {
		case "on", "yes":
			field.SetBool(true)
		case "off", "no", "":
			field.SetBool(false)
		default:
			b, err := strconv.ParseBool(s)
			if err != nil {
				return fmt.Errorf("invalid bool value %q", s)
			}
			field.SetBool(b)
		}
	default:
		return fmt.Errorf("unsupported type %s", typ.Kind())
	}
	return nil
}
