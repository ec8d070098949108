package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	PairSeparator  = ","
	ValueSeparator = "="
)

var stringMapType = reflect.TypeOf(map[string]string{})

// StringToMapHookFunc decodes "k1=v1,k2=v2" into a map[string]string.
// Environment overrides of map settings arrive in this form.
func StringToMapHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != stringMapType {
			return data, nil
		}

		raw := strings.TrimSpace(data.(string))
		if raw == "" {
			return map[string]string{}, nil
		}
		pairs := strings.Split(raw, PairSeparator)
		m := make(map[string]string, len(pairs))
		for _, pair := range pairs {
			key, value, found := strings.Cut(pair, ValueSeparator)
			if !found {
				return nil, fmt.Errorf("invalid key-value pair: %q", pair)
			}
			m[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
		return m, nil
	}
}

// JSONArrayToSliceHookFunc decodes a string holding a JSON array, such as
// `["a","b"]`, into a slice. Anything else is passed through untouched.
func JSONArrayToSliceHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Slice {
			return data, nil
		}

		raw := strings.TrimSpace(data.(string))
		if !strings.HasPrefix(raw, "[") {
			return data, nil
		}
		var result []interface{}
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return data, nil
		}
		return result, nil
	}
}

// CompositeDecodeHook chains every decode hook used when loading settings.
// Plain comma lists still work for slices once the JSON form is ruled out.
func CompositeDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		JSONArrayToSliceHookFunc(),
		mapstructure.StringToSliceHookFunc(PairSeparator),
		StringToMapHookFunc(),
	)
}

func decoderConfig() viper.DecoderConfigOption {
	return viper.DecodeHook(CompositeDecodeHook())
}
