// Command gitlad is an interactive staging UI for git. It renders the
// repository status as a foldable buffer and stages, unstages, or discards
// changes at file, hunk, or line granularity.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/actionshrimp/gitlad"
	ui "github.com/actionshrimp/gitlad/bubbletea"
	"github.com/actionshrimp/gitlad/chroma"
	"github.com/actionshrimp/gitlad/git"
	"github.com/actionshrimp/gitlad/gitdiff"
)

// App wires the program together. Fields are exported so tests can inject
// fakes; nil fields are built from the repository at Dir.
type App struct {
	Dir    string // repository directory, discovered upward from here
	Status bool   // print a one-shot status summary instead of the TUI
	Output io.Writer

	Loader  gitlad.Loader
	Applier gitlad.Applier
	Viewer  gitlad.Viewer
}

// Run executes the app. In status mode it writes a summary to Output and
// returns; otherwise it blocks inside the interactive viewer until the
// user quits.
func (a *App) Run(ctx context.Context) error {
	out := a.Output
	if out == nil {
		out = os.Stdout
	}

	root := a.Dir
	if a.Loader == nil || a.Applier == nil || (a.Viewer == nil && !a.Status) {
		repo, err := git.Discover(a.Dir)
		if err != nil {
			return err
		}
		root = repo.Root()
		if a.Loader == nil {
			a.Loader = git.NewLoader(repo, gitdiff.NewParser())
		}
		if a.Applier == nil {
			a.Applier = git.NewApplier(repo)
		}
	}

	if a.Status {
		snap, err := a.Loader.Load(ctx)
		if err != nil {
			return err
		}
		return writeStatus(out, snap)
	}

	if a.Viewer == nil {
		model := ui.NewModel(a.Loader, a.Applier, root,
			ui.WithTokenizer(chroma.NewTokenizer()),
			ui.WithLanguageDetector(chroma.NewDetector()),
		)
		a.Viewer = ui.NewViewer(model)
	}
	return a.Viewer.View(ctx)
}

// writeStatus prints a non-interactive status summary, one section per
// block in display order.
func writeStatus(w io.Writer, snap *gitlad.Snapshot) error {
	branch := snap.Branch
	if branch == "" {
		branch = "(detached)"
	}
	if _, err := fmt.Fprintf(w, "## %s %s\n", branch, snap.HeadSubject); err != nil {
		return err
	}

	if len(snap.Conflicts) > 0 {
		fmt.Fprintf(w, "\n%s (%d)\n", gitlad.SectionConflicts.Title(), len(snap.Conflicts))
		for _, path := range snap.Conflicts {
			fmt.Fprintf(w, "  unmerged   %s\n", path)
		}
	}

	sections := []struct {
		section gitlad.Section
		files   []gitlad.FileDiff
	}{
		{gitlad.SectionUntracked, snap.Untracked},
		{gitlad.SectionUnstaged, snap.Unstaged},
		{gitlad.SectionStaged, snap.Staged},
	}
	for _, s := range sections {
		if len(s.files) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d)\n", s.section.Title(), len(s.files))
		for i := range s.files {
			fmt.Fprintf(w, "  %-10s %s\n", s.files[i].State, s.files[i].Path)
		}
	}

	if !snap.HasChanges() {
		fmt.Fprintln(w, "\nnothing to commit, working tree clean")
	}
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("gitlad: ")

	dir := flag.String("dir", ".", "repository directory")
	status := flag.Bool("status", false, "print a status summary and exit")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	if *noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	app := &App{Dir: *dir, Status: *status, Output: os.Stdout}
	if err := app.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
