package fixer

// Stage is one rewrite rule of the pipeline.
//
// Apply must be total: it accepts any Document and never fails. It returns
// the number of fixes it made so the engine can tally them.
type Stage interface {
	// ID returns the markdownlint rule identifier the stage fixes (e.g. "MD009").
	ID() string

	// Name returns the human-readable name (e.g. "no-trailing-spaces").
	Name() string

	// Description explains what the stage rewrites.
	Description() string

	// Order positions the stage in the pipeline; lower runs first.
	Order() int

	// Tags categorizes the stage.
	Tags() []string

	// Apply rewrites doc in place.
	Apply(doc *Document, rc *RunContext) int
}

// BaseStage implements the metadata half of Stage. Embed it and add Apply.
type BaseStage struct {
	id    string
	name  string
	desc  string
	order int
	tags  []string
}

// NewBaseStage creates a BaseStage.
func NewBaseStage(id, name, desc string, order int, tags ...string) BaseStage {
	return BaseStage{id: id, name: name, desc: desc, order: order, tags: tags}
}

// ID returns the stage identifier.
func (s *BaseStage) ID() string { return s.id }

// Name returns the stage name.
func (s *BaseStage) Name() string { return s.name }

// Description returns the stage description.
func (s *BaseStage) Description() string { return s.desc }

// Order returns the pipeline position.
func (s *BaseStage) Order() int { return s.order }

// Tags returns the stage tags.
func (s *BaseStage) Tags() []string { return s.tags }
