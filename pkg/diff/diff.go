// Package diff renders unified diffs between a document and its fixed form.
package diff

import (
	"fmt"
	"strings"
)

// Op marks a diff line as kept, added or removed.
type Op byte

// Line operations, using their unified diff prefixes.
const (
	OpKeep   Op = ' '
	OpAdd    Op = '+'
	OpRemove Op = '-'
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Line is one line of a hunk.
type Line struct {
	Op   Op
	Text string
}

// Hunk is a contiguous group of changes with surrounding context.
// Starts are 1-based.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Lines              []Line
}

// Diff is the unified diff of one file.
type Diff struct {
	Path    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// Compute diffs before against after. It returns nil when they are equal.
func Compute(path, before, after string) *Diff {
	if before == after {
		return nil
	}
	script := editScript(split(before), split(after))

	d := &Diff{Path: path}
	for _, l := range script {
		switch l.Op {
		case OpAdd:
			d.Added++
		case OpRemove:
			d.Removed++
		}
	}
	d.Hunks = hunks(script)
	if len(d.Hunks) == 0 {
		return nil
	}
	return d
}

// HasChanges reports whether d holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders d in unified format with "a/" and "b/" path prefixes.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%s +%s @@\n", rangeOf(h.OldStart, h.OldLines), rangeOf(h.NewStart, h.NewLines))
		for _, l := range h.Lines {
			b.WriteByte(byte(l.Op))
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func rangeOf(start, n int) string {
	if n == 1 {
		return fmt.Sprint(start)
	}
	if n == 0 {
		start--
	}
	return fmt.Sprintf("%d,%d", start, n)
}

// split breaks text into lines; a trailing newline does not open a new line.
func split(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// maxTableCells bounds the LCS table. A middle section larger than this is
// diffed as one replacement.
const maxTableCells = 1 << 22

// editScript returns the line operations that turn a into b. Equal leading
// and trailing lines are kept as-is and only the middle goes through the
// LCS table. Removals come before additions within a change.
func editScript(a, b []string) []Line {
	head := 0
	for head < len(a) && head < len(b) && a[head] == b[head] {
		head++
	}
	tail := 0
	for tail < len(a)-head && tail < len(b)-head && a[len(a)-1-tail] == b[len(b)-1-tail] {
		tail++
	}

	script := make([]Line, 0, len(a)+len(b)-head-tail)
	for _, text := range a[:head] {
		script = append(script, Line{OpKeep, text})
	}
	midA, midB := a[head:len(a)-tail], b[head:len(b)-tail]
	if len(midA)*len(midB) > maxTableCells {
		script = append(script, replaceAll(midA, midB)...)
	} else {
		script = append(script, lcsScript(midA, midB)...)
	}
	for _, text := range a[len(a)-tail:] {
		script = append(script, Line{OpKeep, text})
	}
	return script
}

func replaceAll(a, b []string) []Line {
	script := make([]Line, 0, len(a)+len(b))
	for _, text := range a {
		script = append(script, Line{OpRemove, text})
	}
	for _, text := range b {
		script = append(script, Line{OpAdd, text})
	}
	return script
}

// lcsScript walks a longest-common-subsequence table of a and b.
func lcsScript(a, b []string) []Line {
	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	script := make([]Line, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			script = append(script, Line{OpKeep, a[i]})
			i++
			j++
		case j == len(b) || (i < len(a) && lcs[i+1][j] >= lcs[i][j+1]):
			script = append(script, Line{OpRemove, a[i]})
			i++
		default:
			script = append(script, Line{OpAdd, b[j]})
			j++
		}
	}
	return script
}

// hunks groups an edit script into hunks, merging changes whose context
// would overlap.
func hunks(script []Line) []Hunk {
	var out []Hunk
	oldLine, newLine := 1, 1

	for k := 0; k < len(script); {
		if script[k].Op == OpKeep {
			oldLine++
			newLine++
			k++
			continue
		}

		// Back up over leading context.
		lead := 0
		for lead < contextLines && k-lead-1 >= 0 && script[k-lead-1].Op == OpKeep {
			lead++
		}
		h := Hunk{OldStart: oldLine - lead, NewStart: newLine - lead, OldLines: lead, NewLines: lead}
		h.Lines = append(h.Lines, script[k-lead:k]...)

		// Extend until a run of unchanged lines is long enough to split.
		end := k
		for end < len(script) {
			if script[end].Op != OpKeep {
				end++
				continue
			}
			run := 0
			for end+run < len(script) && script[end+run].Op == OpKeep {
				run++
			}
			if end+run == len(script) || run > 2*contextLines {
				break
			}
			end += run
		}

		for _, l := range script[k:end] {
			h.Lines = append(h.Lines, l)
			switch l.Op {
			case OpKeep:
				h.OldLines++
				h.NewLines++
				oldLine++
				newLine++
			case OpRemove:
				h.OldLines++
				oldLine++
			case OpAdd:
				h.NewLines++
				newLine++
			}
		}

		// Trailing context.
		trail := 0
		for trail < contextLines && end+trail < len(script) && script[end+trail].Op == OpKeep {
			h.Lines = append(h.Lines, script[end+trail])
			trail++
		}
		h.OldLines += trail
		h.NewLines += trail
		oldLine += trail
		newLine += trail

		out = append(out, h)
		k = end + trail
	}
	return out
}
