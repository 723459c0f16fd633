package stages

import "github.com/yaklabco/mdfix/pkg/fixer"

// Pipeline positions. Whitespace cleanup runs first, block spacing before the
// stages that rewrite line content, wrapping after every content rewrite and
// the final newline last of all.
const (
	orderTrailingSpaces    = 10
	orderBlankLines        = 20
	orderHeadingSpacing    = 30
	orderListSpacing       = 40
	orderFenceSpacing      = 50
	orderFenceLanguage     = 60
	orderDuplicateHeadings = 70
	orderListIndent        = 80
	orderOrderedPrefix     = 90
	orderBareURLs          = 100
	orderEmphasisStyle     = 110
	orderLineLength        = 120
	orderFinalNewline      = 900
)

// aliases maps markdownlint's older rule names to stage IDs.
//
//nolint:gochecknoglobals // read-only table
var aliases = map[string]string{
	"blanks-around-headers": "MD022",
	"no-duplicate-header":   "MD024",
}

//nolint:gochecknoinits // Init is intentional for automatic stage registration
func init() {
	Register(fixer.DefaultRegistry)
}

// All returns a new instance of every built-in stage.
func All() []fixer.Stage {
	return []fixer.Stage{
		NewTrailingSpaces(),
		NewBlankLines(),
		NewHeadingSpacing(),
		NewListSpacing(),
		NewFenceSpacing(),
		NewFenceLanguage(),
		NewDuplicateHeadings(),
		NewListIndent(),
		NewOrderedPrefix(),
		NewBareURLs(),
		NewEmphasisStyle(),
		NewLineLength(),
		NewFinalNewline(),
	}
}

// Register adds the built-in stages and their aliases to registry.
func Register(registry *fixer.Registry) {
	for _, stage := range All() {
		registry.Register(stage)
	}
	for alias, id := range aliases {
		registry.RegisterAlias(alias, id)
	}
}
