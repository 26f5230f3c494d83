// Package patch synthesizes minimal valid patches from user-selected
// subsets of hunk lines. Every staging granularity reduces to one
// Synthesize call: file-level and hunk-level actions are whole-hunk
// selections of the same code path that serves visual line ranges.
package patch

import (
	"fmt"
	"strings"

	"github.com/actionshrimp/gitlad"
)

// emission is the fate of one input line in the synthesized patch.
type emission int

const (
	// emitDrop removes the line from the patch entirely.
	emitDrop emission = iota
	// emitContext demotes the line to context, preserving its content.
	emitContext
	// emitKeep carries the line through with its original kind.
	emitKeep
)

// emissionTable maps (mode, kind, in-selection) to an emission.
//
// Stage applies forward to the index: non-selected additions do not exist
// in the index yet, so they are dropped; non-selected removals still exist
// there, so they become context. Unstage and Discard are reverse applies
// (against index and worktree respectively), where the patch's new side
// must match the target: non-selected additions are present there and
// become context, while non-selected removals are absent and are dropped.
var emissionTable = map[gitlad.SynthesisMode]map[gitlad.LineKind][2]emission{
	gitlad.Stage: {
		gitlad.LineContext: {emitContext, emitContext},
		gitlad.LineAdded:   {emitDrop, emitKeep},
		gitlad.LineRemoved: {emitContext, emitKeep},
	},
	gitlad.Unstage: {
		gitlad.LineContext: {emitContext, emitContext},
		gitlad.LineAdded:   {emitContext, emitKeep},
		gitlad.LineRemoved: {emitDrop, emitKeep},
	},
	gitlad.Discard: {
		gitlad.LineContext: {emitContext, emitContext},
		gitlad.LineAdded:   {emitContext, emitKeep},
		gitlad.LineRemoved: {emitDrop, emitKeep},
	},
}

// Synthesize produces an independently valid patch representing only the
// selected line range of one hunk of f. The result is applied with the flag
// set named by mode.Target(). It returns a *gitlad.SelectionError when the
// selection is empty, escapes the hunk, or contains only context lines.
func Synthesize(f *gitlad.FileDiff, hunkIndex int, sel gitlad.Selection, mode gitlad.SynthesisMode) (string, error) {
	if f.IsBinary {
		return "", &gitlad.SelectionError{Reason: "binary files cannot be staged by line"}
	}
	if hunkIndex < 0 || hunkIndex >= len(f.Hunks) {
		return "", &gitlad.SelectionError{Reason: "no such hunk"}
	}
	hunk := &f.Hunks[hunkIndex]
	if err := sel.Validate(hunk); err != nil {
		return "", err
	}

	// Untracked files have no index entry, so every mode reduces to an
	// add-only new-file patch over the selected lines.
	if f.State == gitlad.FileUntracked {
		return newFilePatch(f.Path, hunk, sel), nil
	}

	out := synthesizeHunk(hunk, sel, mode)
	wholeDelete := f.State == gitlad.FileDeleted &&
		sel.First == 0 && sel.Last == len(hunk.Lines)-1

	var b strings.Builder
	writeFileHeader(&b, f, wholeDelete)
	b.WriteString(out.Text())
	return b.String(), nil
}

// SynthesizeFile produces a single patch covering every line of every hunk
// of f, equivalent to staging the file as a whole. One patch document per
// logical action keeps apply atomic: there is never a dependent second call
// that could leave the index and worktree half-updated.
func SynthesizeFile(f *gitlad.FileDiff, mode gitlad.SynthesisMode) (string, error) {
	if f.IsBinary {
		return "", &gitlad.SelectionError{Reason: "binary files cannot be staged by patch"}
	}
	if len(f.Hunks) == 0 {
		return "", &gitlad.SelectionError{Reason: "nothing left to select"}
	}

	if f.State == gitlad.FileUntracked {
		return newFilePatch(f.Path, &f.Hunks[0], gitlad.WholeHunk(&f.Hunks[0])), nil
	}

	var b strings.Builder
	writeFileHeader(&b, f, f.State == gitlad.FileDeleted)
	for i := range f.Hunks {
		hunk := &f.Hunks[i]
		sel := gitlad.WholeHunk(hunk)
		if err := sel.Validate(hunk); err != nil {
			return "", err
		}
		b.WriteString(synthesizeHunk(hunk, sel, mode).Text())
	}
	return b.String(), nil
}

// synthesizeHunk reclassifies every line of the hunk through the emission
// table and recomputes the @@ counts from what was actually emitted. The
// start positions are unchanged: demoted context lines preserve the
// positional anchoring of the original hunk.
func synthesizeHunk(hunk *gitlad.Hunk, sel gitlad.Selection, mode gitlad.SynthesisMode) *gitlad.Hunk {
	out := &gitlad.Hunk{
		OldStart: hunk.OldStart,
		NewStart: hunk.NewStart,
		Section:  hunk.Section,
	}

	table := emissionTable[mode]
	for i, line := range hunk.Lines {
		in := 0
		if sel.Contains(i) {
			in = 1
		}
		switch table[line.Kind][in] {
		case emitDrop:
			continue
		case emitContext:
			line.Kind = gitlad.LineContext
		}
		switch line.Kind {
		case gitlad.LineContext:
			out.OldCount++
			out.NewCount++
		case gitlad.LineAdded:
			out.NewCount++
		case gitlad.LineRemoved:
			out.OldCount++
		}
		out.Lines = append(out.Lines, line)
	}

	// A pure-add or pure-delete hunk anchors its empty side at 0. When
	// demotion puts lines back on that side the anchor must move to 1 or
	// git rejects the header.
	if out.OldCount > 0 && out.OldStart == 0 {
		out.OldStart = 1
	}
	if out.NewCount > 0 && out.NewStart == 0 {
		out.NewStart = 1
	}
	return out
}

// newFilePatch emits an add-only patch creating path from the selected
// lines of an untracked file's synthetic hunk.
func newFilePatch(path string, hunk *gitlad.Hunk, sel gitlad.Selection) string {
	out := &gitlad.Hunk{NewStart: 1}
	for i := sel.First; i <= sel.Last; i++ {
		line := hunk.Lines[i]
		line.NewLineNo = out.NewCount + 1
		out.NewCount++
		out.Lines = append(out.Lines, line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
	b.WriteString("new file mode 100644\n")
	b.WriteString("--- /dev/null\n")
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	b.WriteString(out.Text())
	return b.String()
}

func writeFileHeader(b *strings.Builder, f *gitlad.FileDiff, deletion bool) {
	fmt.Fprintf(b, "diff --git a/%s b/%s\n", f.OldPath, f.Path)
	if deletion {
		b.WriteString("deleted file mode 100644\n")
		fmt.Fprintf(b, "--- a/%s\n", f.OldPath)
		b.WriteString("+++ /dev/null\n")
		return
	}
	fmt.Fprintf(b, "--- a/%s\n", f.OldPath)
	fmt.Fprintf(b, "+++ b/%s\n", f.Path)
}
