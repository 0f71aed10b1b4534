package typeref

// Kotlin standard library types used throughout the catalogue.
var (
	Any        = Class("kotlin", "Any")
	Unit       = Class("kotlin", "Unit")
	String     = Class("kotlin", "String")
	Boolean    = Class("kotlin", "Boolean")
	Int        = Class("kotlin", "Int")
	Long       = Class("kotlin", "Long")
	List       = Class("kotlin.collections", "List")
	MutableMap = Class("kotlin.collections", "MutableMap")
	Map        = Class("kotlin.collections", "Map")
)

// defaultImports lists the packages Kotlin imports implicitly on the JVM.
var defaultImports = map[string]bool{
	"kotlin":             true,
	"kotlin.annotation":  true,
	"kotlin.collections": true,
	"kotlin.comparisons": true,
	"kotlin.io":          true,
	"kotlin.ranges":      true,
	"kotlin.sequences":   true,
	"kotlin.text":        true,
	"java.lang":          true,
}

// IsDefaultImport reports whether classes in pkg need no import statement.
func IsDefaultImport(pkg string) bool {
	return defaultImports[pkg]
}
