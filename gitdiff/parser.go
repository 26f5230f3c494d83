// Package gitdiff implements diff parsing using the go-gitdiff library.
package gitdiff

import (
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/actionshrimp/gitlad"
)

// Compile-time interface verification.
var _ gitlad.Parser = (*Parser)(nil)

// Parser parses unified git diff output into domain types.
type Parser struct{}

// NewParser creates a new go-gitdiff-backed parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads unified diff content and returns one FileDiff per changed
// file. Old and new line numbers are assigned from each hunk header's start
// values, advancing only the side(s) a line belongs to. Binary files yield
// a FileDiff with IsBinary set and no hunks.
func (p *Parser) Parse(r io.Reader) ([]gitlad.FileDiff, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, &gitlad.ParseError{Msg: "malformed diff", Err: err}
	}

	out := make([]gitlad.FileDiff, 0, len(files))
	for _, f := range files {
		out = append(out, convertFile(f))
	}
	return out, nil
}

func convertFile(f *gitdiff.File) gitlad.FileDiff {
	fd := gitlad.FileDiff{
		Path:     f.NewName,
		OldPath:  f.OldName,
		IsBinary: f.IsBinary,
	}

	switch {
	case f.IsNew:
		fd.State = gitlad.FileAdded
		fd.OldPath = f.NewName
	case f.IsDelete:
		fd.State = gitlad.FileDeleted
		fd.Path = f.OldName
		fd.OldPath = f.OldName
	case f.IsRename:
		fd.State = gitlad.FileRenamed
	case f.IsCopy:
		fd.State = gitlad.FileAdded
		fd.OldPath = f.NewName
	default:
		fd.State = gitlad.FileModified
	}

	if fd.IsBinary {
		return fd
	}

	fd.Hunks = make([]gitlad.Hunk, 0, len(f.TextFragments))
	for _, frag := range f.TextFragments {
		fd.Hunks = append(fd.Hunks, convertFragment(frag))
	}
	return fd
}

func convertFragment(frag *gitdiff.TextFragment) gitlad.Hunk {
	h := gitlad.Hunk{
		OldStart: int(frag.OldPosition),
		OldCount: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewCount: int(frag.NewLines),
		Section:  frag.Comment,
		Lines:    make([]gitlad.Line, 0, len(frag.Lines)),
	}

	oldNo := h.OldStart
	newNo := h.NewStart
	for _, fl := range frag.Lines {
		line := gitlad.Line{
			Content:   strings.TrimSuffix(fl.Line, "\n"),
			NoNewline: !strings.HasSuffix(fl.Line, "\n"),
		}
		switch fl.Op {
		case gitdiff.OpAdd:
			line.Kind = gitlad.LineAdded
			line.NewLineNo = newNo
			newNo++
		case gitdiff.OpDelete:
			line.Kind = gitlad.LineRemoved
			line.OldLineNo = oldNo
			oldNo++
		default:
			line.Kind = gitlad.LineContext
			line.OldLineNo = oldNo
			line.NewLineNo = newNo
			oldNo++
			newNo++
		}
		h.Lines = append(h.Lines, line)
	}
	return h
}
