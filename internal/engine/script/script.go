// Package script assembles JavaScript snippets injected into pages.
// Callers build calls into the window-level helper object the engine
// installs, with arguments quoted safely for embedding.
package script

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Namespace is the window-level object holding the injected helpers.
const Namespace = "window.__skiff"

// Quote returns s as a double-quoted JavaScript string literal.
func Quote(s string) string {
	return strconv.Quote(s)
}

// ToJS renders v as a JavaScript literal. Values must survive JSON
// encoding; anything else panics, since snippet arguments are always
// built from static Go values.
func ToJS(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("script: unencodable argument %T: %v", v, err))
	}
	return string(data)
}

// Call renders fn(args...) with every argument encoded via ToJS.
func Call(fn string, args ...any) string {
	encoded := make([]string, len(args))
	for i, arg := range args {
		encoded[i] = ToJS(arg)
	}
	return fmt.Sprintf("%s(%s)", fn, strings.Join(encoded, ", "))
}

// Assemble renders a call to a function of the injected helper module,
// e.g. Assemble("scroll", "toPerc", 0, 100). Pass module "window" to
// call a global function instead.
func Assemble(module, fn string, args ...any) string {
	if module == "window" {
		return Call("window."+fn, args...)
	}
	return Call(fmt.Sprintf("%s.%s.%s", Namespace, module, fn), args...)
}

// IIFE wraps body in an immediately invoked function so injected
// statements cannot leak locals into the page.
func IIFE(body string) string {
	return fmt.Sprintf("(function() {\n%s\n})()", body)
}
