package stages_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdfix/pkg/fixer"
)

// stageCase is one input/output pair for a single stage.
type stageCase struct {
	name      string
	input     string
	want      string
	wantFixes int
}

func applyStage(stage fixer.Stage, input string, opts fixer.Options) (string, int) {
	doc := fixer.NewDocument(input, opts)
	n := stage.Apply(doc, fixer.NewRunContext(context.Background()))
	return doc.Text(), n
}

// runStageCases checks every case and that a second application is a no-op.
func runStageCases(t *testing.T, newStage func() fixer.Stage, opts fixer.Options, cases []stageCase) {
	t.Helper()

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, fixes := applyStage(newStage(), tt.input, opts)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantFixes, fixes, "fix count")

			again, more := applyStage(newStage(), got, opts)
			assert.Equal(t, got, again, "second run changed the output")
			assert.Zero(t, more, "second run reported fixes")
		})
	}
}
