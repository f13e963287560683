package syntax

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

var keywords = set(
	// control flow
	"if", "else", "elif", "switch", "case", "default", "for", "while", "do", "break",
	"continue", "return", "goto", "try", "catch", "throw", "throws", "finally", "except",
	"raise", "pass", "yield", "async", "await", "defer", "guard",

	// declarations
	"var", "let", "const", "static", "final", "volatile", "mutable", "extern",
	"public", "private", "protected", "internal", "open", "fileprivate",
	"class", "struct", "enum", "interface", "trait", "protocol", "extension",
	"func", "function", "fn", "def", "sub", "method", "constructor",
	"import", "export", "module", "package", "namespace", "using", "include", "require",
	"typedef", "typealias", "type", "alias",

	// primitive types
	"int", "float", "double", "char", "string", "bool", "boolean", "void", "null",
	"nil", "none", "undefined", "any", "object", "array", "list", "dict", "map",
	"set", "tuple", "vector", "long", "short", "byte", "uint", "int8", "int16",
	"int32", "int64", "uint8", "uint16", "uint32", "uint64", "size_t", "auto",

	"true", "false", "True", "False", "TRUE", "FALSE",

	// object model
	"new", "delete", "this", "self", "super", "init", "deinit", "override",
	"virtual", "abstract", "sealed", "readonly", "mutating", "nonmutating",
	"lazy", "weak", "unowned", "strong", "copy",

	"in", "is", "as", "of", "with", "from", "where", "when", "match",
	"lambda", "closure", "inline", "noinline", "constexpr", "sizeof", "typeof",
	"instanceof", "implements", "extends",
)

var types = set(
	"String", "Int", "Integer", "Float", "Double", "Bool", "Boolean", "Array",
	"Dictionary", "Set", "List", "Map", "HashMap", "ArrayList", "Vector",
	"Object", "Class", "Function", "Promise", "Optional", "Result", "Error",
	"Exception", "NSObject", "UIView", "UIViewController", "Date", "URL",
	"Data", "Number", "BigInt", "Symbol", "RegExp", "Math", "JSON", "Console",
)

var constants = set(
	"NULL", "nullptr", "NaN", "Infinity", "undefined", "PI", "E",
	"MAX_VALUE", "MIN_VALUE", "MAX_INT", "MIN_INT", "EPSILON",
	"stdin", "stdout", "stderr", "argc", "argv", "errno",
)
