package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"omdb/finder/internal/config"
	"omdb/finder/internal/service"

	"github.com/chzyer/readline"
	log "github.com/sirupsen/logrus"
)

const helpText = `Commands:
  search <text>   search the catalog (page 1)
  page <n>        go to page n
  next | prev     move between pages
  open <n|id>     show details of result n or of an imdb id
  close           close the details view
  fav [n]         toggle result n, or the open item, as favorite
  favs            list favorites
  rm <id>         remove a favorite
  plot            translate the plot of the open item
  help            show this help
  quit            exit`

// Shell is the interactive front end. It renders service state as text.
type Shell struct {
	svc *service.Service
	out io.Writer
	cfg config.ShellConfig
}

func New(svc *service.Service, out io.Writer, cfg config.ShellConfig) *Shell {
	return &Shell{
		svc: svc,
		out: out,
		cfg: cfg,
	}
}

// Run reads commands until quit, EOF or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.cfg.Prompt,
		HistoryFile:     s.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdout:          s.out,
	})
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	defer rl.Close()

	stop := context.AfterFunc(ctx, func() { rl.Close() })
	defer stop()

	fmt.Fprintln(s.out, "OMDb finder. Type 'help' for commands.")
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if quit := s.Execute(ctx, line); quit {
			return nil
		}
	}
}

// Execute runs one command line and reports whether the shell should exit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "search", "s":
		s.wait(ctx, s.svc.Search(ctx, arg))
		s.renderSearch()
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(s.out, "Invalid page %q\n", arg)
			return false
		}
		s.wait(ctx, s.svc.SetPage(ctx, n))
		s.renderSearch()
	case "next", "n":
		s.wait(ctx, s.svc.NextPage(ctx))
		s.renderSearch()
	case "prev", "p":
		s.wait(ctx, s.svc.PrevPage(ctx))
		s.renderSearch()
	case "open", "o":
		s.open(ctx, arg)
	case "close":
		s.svc.CloseDetails(ctx)
	case "fav", "f":
		s.toggle(ctx, arg)
	case "favs":
		s.renderFavorites()
	case "rm":
		if !s.svc.RemoveFavorite(ctx, arg) {
			fmt.Fprintf(s.out, "%s is not a favorite\n", arg)
			return false
		}
		s.renderFavorites()
	case "plot":
		plot, err := s.svc.TranslatedPlot(ctx)
		if err != nil {
			fmt.Fprintln(s.out, "Open an item first.")
			return false
		}
		fmt.Fprintln(s.out, plot)
	default:
		fmt.Fprintf(s.out, "Unknown command %q, type 'help'\n", cmd)
	}

	return false
}

func (s *Shell) open(ctx context.Context, arg string) {
	id := arg
	if n, err := strconv.Atoi(arg); err == nil {
		item, err := s.svc.ResultAt(n)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		id = item.ID
	}
	if id == "" {
		fmt.Fprintln(s.out, "Usage: open <n|id>")
		return
	}

	s.wait(ctx, s.svc.Open(ctx, id))
	s.renderDetails()
}

func (s *Shell) toggle(ctx context.Context, arg string) {
	var (
		title string
		added bool
	)

	if arg == "" {
		item, ok, err := s.svc.ToggleSelected(ctx)
		if err != nil {
			fmt.Fprintln(s.out, "Open an item or give a result number.")
			return
		}
		title, added = item.Title, ok
	} else {
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(s.out, "Invalid result number %q\n", arg)
			return
		}
		item, ok, err := s.svc.ToggleResult(ctx, n)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		title, added = item.Title, ok
	}

	if added {
		fmt.Fprintf(s.out, "★ Added %s to favorites\n", title)
	} else {
		fmt.Fprintf(s.out, "☆ Removed %s from favorites\n", title)
	}
}

// wait blocks until the request settles. On cancellation the request keeps
// running and its result is shown by the next render.
func (s *Shell) wait(ctx context.Context, done <-chan struct{}) {
	select {
	case <-done:
	case <-ctx.Done():
		log.Debug("Stopped waiting for request")
	}
}
