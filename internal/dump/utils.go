/*
Copyright 2017 Google Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package dump

import (
	"fmt"
	"io"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

var (
	stringsType = reflect.TypeOf([]string(nil))
	bigIntType  = reflect.TypeOf((*big.Int)(nil))
)

func mustWrite(w io.Writer, data []byte) {
	if _, err := w.Write(data); err != nil {
		panic(err)
	}
}

func printBool(w io.Writer, value bool) {
	mustWrite(w, []byte(strconv.FormatBool(value)))
}

func printInt(w io.Writer, val reflect.Value, stripPackageName bool) {
	typeName := val.Type().String()
	if typeName == "int" {
		mustWrite(w, []byte(strconv.FormatInt(val.Int(), 10)))
		return
	}
	if stripPackageName && strings.HasPrefix(typeName, "ast.") {
		typeName = typeName[4:]
	}
	mustWrite(w, []byte(fmt.Sprintf("%s(%s)", typeName, strconv.FormatInt(val.Int(), 10))))
}

func printFloat(w io.Writer, val float64, precision int) {
	mustWrite(w, []byte(strconv.FormatFloat(val, 'g', -1, precision)))
}

func printStrings(w io.Writer, list []string) {
	quoted := make([]string, len(list))
	for i, s := range list {
		quoted[i] = strconv.Quote(s)
	}
	mustWrite(w, []byte("["+strings.Join(quoted, ", ")+"]"))
}

// deInterface returns values inside of non-nil interfaces when possible.
// This is useful for data types like structs, arrays, slices, and maps which
// can contain varying types packed inside an interface.
func deInterface(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func isPrimitiveValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Float32,
		reflect.Float64, reflect.String:
		return true
	}
	return false
}

// isAttribute reports whether a field value is printed inline with its node.
// Node valued fields are printed as children instead.
func isAttribute(v reflect.Value) bool {
	return isPrimitiveValue(v) || v.Type() == stringsType || v.Type() == bigIntType
}

// printAttribute writes a value accepted by isAttribute.
func printAttribute(w io.Writer, v reflect.Value) {
	if s, ok := v.Interface().(fmt.Stringer); ok {
		mustWrite(w, []byte(s.String()))
		return
	}
	switch v.Kind() {
	case reflect.Bool:
		printBool(w, v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		printInt(w, v, true)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		mustWrite(w, []byte(strconv.FormatUint(v.Uint(), 10)))
	case reflect.Float32:
		printFloat(w, v.Float(), 32)
	case reflect.Float64:
		printFloat(w, v.Float(), 64)
	case reflect.String:
		mustWrite(w, []byte(strconv.Quote(v.String())))
	case reflect.Slice:
		printStrings(w, v.Interface().([]string))
	}
}

// attributeValue converts a value accepted by isAttribute for YAML output.
func attributeValue(v reflect.Value) interface{} {
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type().String() != "int" {
			var b strings.Builder
			printInt(&b, v, true)
			return b.String()
		}
		return v.Int()
	}
	return v.Interface()
}
