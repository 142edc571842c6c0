package hack

import (
	"bytes"
	"fmt"
	"reflect"
	"unsafe"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// SetLoggerStringField sets the value of the string field key in the context of logger.
// If the field is already present its value is replaced in place, so that child loggers of
// the result do not contain the field twice. Otherwise the field is added with
// logger.With().Str(key, value).Logger().
func SetLoggerStringField(logger zerolog.Logger, key string, value string) zerolog.Logger {
	field := reflect.ValueOf(&logger).Elem().FieldByName("context")
	context := readUnexportedField(field).([]byte)

	start, end, found := findStringFieldValue(context, key)
	if !found {
		return logger.With().Str(key, value).Logger()
	}

	quotedValue, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}

	newContext := make([]byte, 0, len(context)-(end-start)+len(quotedValue))
	newContext = append(newContext, context[:start]...)
	newContext = append(newContext, quotedValue...)
	newContext = append(newContext, context[end:]...)

	writeUnexportedField(field, newContext)
	return logger
}

// LogEventStringField returns the value of the string field key of a log event, it is
// intended to be called in hooks.
func LogEventStringField(event *zerolog.Event, key string) (string, bool) {
	field := reflect.ValueOf(event).Elem().FieldByName("buf")
	buf := readUnexportedField(field).([]byte)

	start, end, found := findStringFieldValue(buf, key)
	if !found {
		return "", false
	}

	var value string
	if err := json.Unmarshal(buf[start:end], &value); err != nil {
		return "", false
	}
	return value, true
}

// findStringFieldValue searches a JSON object fragment for the field key and returns the
// range of its quoted value. It panics if the field exists but its value is not a string.
func findStringFieldValue(fragment []byte, key string) (start, end int, found bool) {
	quotedKey, err := json.Marshal(key)
	if err != nil {
		panic(err)
	}

	i := 0
	for i < len(fragment) {
		if fragment[i] != '"' {
			i++
			continue
		}

		stringEnd := findStringLiteralEnd(fragment, i)
		if stringEnd < 0 {
			return 0, 0, false
		}

		isKey := stringEnd < len(fragment) && fragment[stringEnd] == ':'
		if !isKey || !bytes.Equal(fragment[i:stringEnd], quotedKey) {
			i = stringEnd
			continue
		}

		valueStart := stringEnd + 1
		if valueStart >= len(fragment) || fragment[valueStart] != '"' {
			panic(fmt.Errorf("field %q has not a string value", key))
		}

		valueEnd := findStringLiteralEnd(fragment, valueStart)
		if valueEnd < 0 {
			panic(fmt.Errorf("the value of the field %q is an unterminated string", key))
		}
		return valueStart, valueEnd, true
	}

	return 0, 0, false
}

// findStringLiteralEnd returns the end (exclusive) of the string literal starting at
// openingQuoteIndex, -1 is returned if the literal is not terminated.
func findStringLiteralEnd(buf []byte, openingQuoteIndex int) int {
	for i := openingQuoteIndex + 1; i < len(buf); i++ {
		switch buf[i] {
		case '\\':
			i++ //skip the escaped byte
		case '"':
			return i + 1
		}
	}
	return -1
}

func readUnexportedField(field reflect.Value) any {
	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem().Interface()
}

func writeUnexportedField(field reflect.Value, value any) {
	reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem().Set(reflect.ValueOf(value))
}
