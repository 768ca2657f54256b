package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/gsoc-explorer/internal/domain"
	"github.com/naka-gawa/gsoc-explorer/internal/explorer"
)

const exploreHelp = `Commands:
  q <text>             free-text search terms (empty clears)
  lang <name|all>      primary language
  topic <name|all>     repository topic
  sort <key>           stars|forks|updated|issues|prs|commits with -desc or -asc
  gsoc on|off          only Google Summer of Code organizations
  refresh              fetch again now
  show                 print the current view
  help                 print this help
  quit                 leave`

var errQuit = errors.New("quit")

// exploreAction is what the REPL does after a line was parsed.
type exploreAction int

const (
	actionNone exploreAction = iota
	actionFilterChanged
	actionRefresh
	actionShow
	actionHelp
)

// parseExploreLine applies one REPL line to f.
func parseExploreLine(line string, f *domain.Filter) (exploreAction, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return actionNone, nil
	}
	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "q", "query":
		f.Query = arg
	case "lang", "language":
		if arg == "" {
			arg = domain.AllOption
		}
		f.Language = arg
	case "topic":
		if arg == "" {
			arg = domain.AllOption
		}
		f.Topic = arg
	case "sort":
		key, err := domain.ParseSortKey(arg)
		if err != nil {
			return actionNone, err
		}
		f.Sort = key
	case "gsoc":
		switch strings.ToLower(arg) {
		case "on", "true", "yes":
			f.GSOCOnly = true
		case "off", "false", "no":
			f.GSOCOnly = false
		default:
			return actionNone, fmt.Errorf("gsoc wants on or off, got %q", arg)
		}
	case "refresh":
		return actionRefresh, nil
	case "show":
		return actionShow, nil
	case "help", "?":
		return actionHelp, nil
	case "quit", "exit":
		return actionNone, errQuit
	default:
		return actionNone, fmt.Errorf("unknown command %q (try help)", verb)
	}
	return actionFilterChanged, nil
}

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactively refines filters; results refresh after each change settles",
	Long: `Starts a line-oriented session. Each filter change schedules a new search once
input has been quiet for EXPLORER_DEBOUNCE (default 500ms). Results are printed
whenever a search finishes.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)

		initial, err := filterFromFlags(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid filter: %v\n", err)
			os.Exit(1)
		}
		aggregator, cfg, err := newAggregator(logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		out := cmd.OutOrStdout()
		var outMu sync.Mutex
		emit := func(s string) {
			outMu.Lock()
			defer outMu.Unlock()
			fmt.Fprint(out, s)
		}

		ctrl := explorer.NewController(ctx, aggregator, initial, cfg.DebounceDelay, logger, func(s explorer.State) {
			emit(renderState(s))
		})
		defer ctrl.Close()

		emit(exploreHelp + "\n")
		ctrl.SetFilter(initial)
		runExplore(cmd.InOrStdin(), ctrl, emit)
	},
}

func runExplore(in io.Reader, ctrl *explorer.Controller, emit func(string)) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		filter := ctrl.Snapshot().Filter
		action, err := parseExploreLine(scanner.Text(), &filter)
		if errors.Is(err, errQuit) {
			return
		}
		if err != nil {
			emit("Error: " + err.Error() + "\n")
			continue
		}
		switch action {
		case actionFilterChanged:
			ctrl.SetFilter(filter)
		case actionRefresh:
			go ctrl.Refresh()
		case actionShow:
			emit(renderState(ctrl.Snapshot()))
		case actionHelp:
			emit(exploreHelp + "\n")
		}
	}
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	addFilterFlags(exploreCmd)
}
