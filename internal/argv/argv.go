// Package argv turns a configuration record into the command-line flags of a test runner.
package argv

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/iancoleman/strcase"

	"github.com/rwx-research/spawn-mocha/internal/options"
)

// joinedFlags are flags whose value needs to be attached with an `=` instead of being passed as a separate argument.
var joinedFlags = map[string]struct{}{
	"--max-old-space-size": {},
}

// Serialize returns the flags for a record, in the order of the record. Sequence values repeat the flag once per
// element. `false`, `nil` and empty string values are omitted, `true` emits the flag without a value. Values rejected
// by Supported are omitted as well.
func Serialize(opts options.Options) []string {
	args := make([]string, 0, len(opts)*2)

	for _, opt := range opts {
		if isSequence(opt.Value) {
			values := reflect.ValueOf(opt.Value)
			for i := 0; i < values.Len(); i++ {
				args = appendFlag(args, opt.Key, values.Index(i).Interface())
			}
			continue
		}

		args = appendFlag(args, opt.Key, opt.Value)
	}

	return args
}

// Supported reports whether a value can be turned into flags: nil, booleans, strings, numbers of any width, and
// slices or arrays of those.
func Supported(value any) bool {
	if isSequence(value) {
		values := reflect.ValueOf(value)
		for i := 0; i < values.Len(); i++ {
			if _, _, ok := scalar(values.Index(i).Interface()); !ok {
				return false
			}
		}
		return true
	}

	_, _, ok := scalar(value)
	return ok
}

// FlagName returns the flag for an option name: `-x` for single characters, `--kebab-case` otherwise.
func FlagName(key string) string {
	if len(key) == 1 {
		return "-" + key
	}

	return "--" + strcase.ToKebab(key)
}

func appendFlag(args []string, key string, value any) []string {
	formatted, present, ok := scalar(value)
	if !ok || !present {
		return args
	}

	flag := FlagName(key)

	// `true` has no value of its own
	if formatted == "" {
		return append(args, flag)
	}

	if _, ok := joinedFlags[flag]; ok {
		return append(args, fmt.Sprintf("%s=%s", flag, formatted))
	}

	return append(args, flag, formatted)
}

func isSequence(value any) bool {
	if value == nil {
		return false
	}

	kind := reflect.TypeOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// scalar formats a single value. present is false for values that are omitted entirely: nil, false and empty strings.
// Numeric zero is kept. A present value formatted as "" is a boolean flag.
func scalar(value any) (formatted string, present, ok bool) {
	if value == nil {
		return "", false, true
	}

	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.Bool:
		return "", v.Bool(), true
	case reflect.String:
		return v.String(), v.String() != "", true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), true, true
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32), true, true
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true, true
	default:
		return "", false, false
	}
}
