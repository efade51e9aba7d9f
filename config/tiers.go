package config

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// TierMap maps the first counter value of a tier to its per-unit cost.
//
// In flags and plain strings it is written as comma separated start:cost pairs,
// for example "0:1,1000:2,10000:4".
type TierMap map[uint64]uint64

// String implements pflag.Value.String.
func (m TierMap) String() string {
	var b strings.Builder
	for i, start := range slices.Sorted(maps.Keys(m)) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(start, 10))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(m[start], 10))
	}
	return b.String()
}

// Set implements pflag.Value.Set.
func (m *TierMap) Set(value string) error {
	return m.UnmarshalText([]byte(value))
}

// Type implements pflag.Value.Type.
func (TierMap) Type() string {
	return "tiers"
}

func (m *TierMap) UnmarshalText(text []byte) error {
	rst := TierMap{}
	for _, pair := range strings.Split(string(text), ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		start, cost, ok := strings.Cut(pair, ":")
		if !ok {
			return fmt.Errorf("tier %q: expected start:cost", pair)
		}
		s, err := strconv.ParseUint(strings.TrimSpace(start), 10, 64)
		if err != nil {
			return fmt.Errorf("tier %q start: %w", pair, err)
		}
		c, err := strconv.ParseUint(strings.TrimSpace(cost), 10, 64)
		if err != nil {
			return fmt.Errorf("tier %q cost: %w", pair, err)
		}
		if _, exists := rst[s]; exists {
			return fmt.Errorf("tier %q: duplicate start %d", pair, s)
		}
		rst[s] = c
	}
	*m = rst
	return nil
}

// TierMapDecodeHook decodes TierMap from tables of config files.
// Keys of such tables are always strings and values are numbers of whatever
// type the file format produces. Keys that parse to the same start are an error.
func TierMapDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(TierMap{}) || from.Kind() != reflect.Map {
			return data, nil
		}
		rst := TierMap{}
		iter := reflect.ValueOf(data).MapRange()
		for iter.Next() {
			start, err := toUint64(iter.Key().Interface())
			if err != nil {
				return nil, fmt.Errorf("tier start %v: %w", iter.Key(), err)
			}
			cost, err := toUint64(iter.Value().Interface())
			if err != nil {
				return nil, fmt.Errorf("tier %d cost: %w", start, err)
			}
			if _, exists := rst[start]; exists {
				return nil, fmt.Errorf("duplicate tier start %d", start)
			}
			rst[start] = cost
		}
		return rst, nil
	}
}

func toUint64(v any) (uint64, error) {
	switch v := v.(type) {
	case string:
		return strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	case int:
		return nonNegative(int64(v))
	case int32:
		return nonNegative(int64(v))
	case int64:
		return nonNegative(v)
	case uint:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	case float64:
		if v < 0 || v != math.Trunc(v) || v >= math.MaxUint64 {
			return 0, fmt.Errorf("%v is not an unsigned integer", v)
		}
		return uint64(v), nil
	}
	return 0, fmt.Errorf("unsupported type %T", v)
}

func nonNegative(v int64) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("%d is negative", v)
	}
	return uint64(v), nil
}
