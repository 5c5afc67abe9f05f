package config

import (
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// bindEnvs binds every leaf field of the settings struct to its environment variable, so that
// multi-word fields (CustomerID) are found under CUSTOMER_ID and not CUSTOMERID.
func bindEnvs(v *viper.Viper, envPrefix string, typ reflect.Type, parts ...string) {
	if typ == nil || typ.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, ok := field.Tag.Lookup("mapstructure")
		if !ok {
			name = field.Name
		}
		path := append(append([]string(nil), parts...), name)

		switch {
		case field.Type.Kind() == reflect.Struct:
			bindEnvs(v, envPrefix, field.Type, path...)
		case field.Type.Kind() == reflect.Pointer && field.Type.Elem().Kind() == reflect.Struct:
			bindEnvs(v, envPrefix, field.Type.Elem(), path...)
		default:
			envParts := make([]string, 0, len(path)+1)
			if envPrefix != "" {
				envParts = append(envParts, strings.ToUpper(envPrefix))
			}
			for _, part := range path {
				envParts = append(envParts, screamingSnake(part))
			}
			_ = v.BindEnv(strings.Join(path, "."), strings.Join(envParts, "_"))
		}
	}
}

// screamingSnake turns camelCase, PascalCase, kebab-case or snake_case into SCREAMING_SNAKE_CASE.
// An upper case run is kept as one word: CustomerID gives CUSTOMER_ID.
func screamingSnake(in string) string {
	in = strings.TrimSpace(in)

	var sb strings.Builder
	sb.Grow(len(in) + len(in)/3)

	prevLower, prevDigit := false, false
	for i := 0; i < len(in); i++ {
		b := in[i]
		switch {
		case b == '_' || b == '-':
			if sb.Len() > 0 {
				sb.WriteByte('_')
			}
			prevLower, prevDigit = false, false
			continue
		case 'A' <= b && b <= 'Z':
			nextLower := i+1 < len(in) && 'a' <= in[i+1] && in[i+1] <= 'z'
			prevUpper := i > 0 && 'A' <= in[i-1] && in[i-1] <= 'Z'
			if sb.Len() > 0 && (prevLower || prevDigit || (prevUpper && nextLower)) {
				sb.WriteByte('_')
			}
			sb.WriteByte(b)
			prevLower, prevDigit = false, false
		case 'a' <= b && b <= 'z':
			if prevDigit {
				sb.WriteByte('_')
			}
			sb.WriteByte(b - ('a' - 'A'))
			prevLower, prevDigit = true, false
		case '0' <= b && b <= '9':
			if sb.Len() > 0 && !prevDigit && in[i-1] != '_' && in[i-1] != '-' {
				sb.WriteByte('_')
			}
			sb.WriteByte(b)
			prevLower, prevDigit = false, true
		default:
			sb.WriteByte(b)
			prevLower, prevDigit = false, false
		}
	}

	return sb.String()
}
