package gitdiff

import (
	"bytes"
	"strings"

	"github.com/actionshrimp/gitlad"
)

// binarySniffLen matches git's own heuristic window.
const binarySniffLen = 8000

// Untracked normalizes raw untracked-file content into the same model as
// parsed diff output: a single synthetic hunk in which every line is an
// addition, anchored at OldStart 0, OldCount 0. Staging a selection of an
// untracked file's lines is then just staging an add-only patch, so the
// render model and synthesizer need no special path for untracked files.
func Untracked(path string, content []byte) gitlad.FileDiff {
	fd := gitlad.FileDiff{
		Path:    path,
		OldPath: path,
		State:   gitlad.FileUntracked,
	}

	if isBinary(content) {
		fd.IsBinary = true
		return fd
	}
	if len(content) == 0 {
		return fd
	}

	noNewline := !bytes.HasSuffix(content, []byte("\n"))
	raw := strings.TrimSuffix(string(content), "\n")
	split := strings.Split(raw, "\n")

	hunk := gitlad.Hunk{
		OldStart: 0,
		OldCount: 0,
		NewStart: 1,
		NewCount: len(split),
		Lines:    make([]gitlad.Line, 0, len(split)),
	}
	for i, text := range split {
		hunk.Lines = append(hunk.Lines, gitlad.Line{
			Kind:      gitlad.LineAdded,
			Content:   text,
			NewLineNo: i + 1,
			NoNewline: noNewline && i == len(split)-1,
		})
	}
	fd.Hunks = []gitlad.Hunk{hunk}
	return fd
}

func isBinary(content []byte) bool {
	if len(content) > binarySniffLen {
		content = content[:binarySniffLen]
	}
	return bytes.IndexByte(content, 0) != -1
}
