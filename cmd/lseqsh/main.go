// lseqsh is an interactive REPL over a single LSEQ sequence replica.
//
// Usage:
//
//	lseqsh [flags]
//
// Flags:
//
//	-s, --site       This replica's site id (default from config, falls back to 1)
//	-f, --snapshot   Path to the snapshot file to load from / save to
//	-c, --config     Explicit config file (default: .lseqsh.json in the working directory)
//
// Commands (in REPL):
//
//	insert <index> <char>   Insert a character at index
//	delete <index>          Delete the entry at index
//	show                    Print the current sequence content
//	entries                 Print raw (id, dot, payload) entries
//	len                     Print the number of live entries
//	save                    Persist a snapshot to the configured path
//	merge <file>            Apply another replica's exported snapshot
//	export <file>           Write this replica's current state to file
//	site                    Print this replica's site id
//	help                    Show this help
//	exit / quit / q         Exit (autosaves)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/lseqkit/lseq/internal/fs"
	"github.com/lseqkit/lseq/internal/shellconfig"
	"github.com/lseqkit/lseq/internal/snapshot"
	"github.com/lseqkit/lseq/pkg/sequence"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := flag.NewFlagSet("lseqsh", flag.ContinueOnError)

	site := flags.Uint32P("site", "s", 0, "this replica's site id")
	snapshotPath := flags.StringP("snapshot", "f", "", "snapshot file path")
	configPath := flags.StringP("config", "c", "", "explicit config file")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lseqsh [flags]\n\nFlags:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		return err //nolint:wrapcheck
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}

	cliOverrides := shellconfig.Config{Site: *site, Snapshot: *snapshotPath}

	cfg, _, err := shellconfig.Load(
		workDir, *configPath, cliOverrides, flags.Changed("site"), flags.Changed("snapshot"), os.Environ(),
	)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	filesys := fs.NewReal()

	r, err := snapshot.Load(filesys, cfg.Snapshot, cfg.Site, nil)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	repl := &REPL{fs: filesys, cfg: cfg, r: r}

	return repl.Run()
}

// REPL is the interactive command loop over a single replica.
type REPL struct {
	fs    fs.FS
	cfg   shellconfig.Config
	r     *sequence.Replica[rune]
	liner *liner.State
	dirty bool
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".lseqsh_history")
}

// Run starts the REPL loop. The exit/quit/q commands autosave when there
// are unsaved changes; leaving through Ctrl-C or end of input does not
// save.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("lseqsh - LSEQ sequence shell (site=%d, snapshot=%s)\n", r.cfg.Site, r.cfg.Snapshot)
	fmt.Printf("%d entries loaded. Type 'help' for available commands.\n\n", r.r.Len())

	for {
		line, err := r.liner.Prompt(fmt.Sprintf("lseq[%d]> ", r.cfg.Site))
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			r.autosave()
			fmt.Println("Bye!")
			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "insert", "ins", "i":
			r.cmdInsert(args)

		case "delete", "del", "d":
			r.cmdDelete(args)

		case "show", "s":
			r.cmdShow()

		case "entries":
			r.cmdEntries()

		case "len":
			fmt.Printf("Live entries: %d\n", r.r.Len())

		case "save":
			r.cmdSave()

		case "merge":
			r.cmdMerge(args)

		case "export":
			r.cmdExport(args)

		case "site":
			fmt.Printf("Site: %d\n", r.r.Site())

		case "clear", "cls":
			fmt.Print("\033[H\033[2J")

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			_, _ = r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *REPL) autosave() {
	if !r.dirty {
		return
	}

	if err := snapshot.Save(r.fs, r.cfg.Snapshot, r.r); err != nil {
		fmt.Printf("Warning: autosave failed: %v\n", err)

		return
	}

	r.dirty = false
}

func (r *REPL) completer(line string) []string {
	commands := []string{
		"insert", "delete", "show", "entries", "len",
		"save", "merge", "export", "site", "clear",
		"help", "exit", "quit", "q",
	}

	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  insert <index> <char>   Insert a character at index")
	fmt.Println("  delete <index>          Delete the entry at index")
	fmt.Println("  show                    Print the current sequence content")
	fmt.Println("  entries                 Print raw (id, dot, payload) entries")
	fmt.Println("  len                     Print the number of live entries")
	fmt.Println("  save                    Persist a snapshot to the configured path")
	fmt.Println("  merge <file>            Apply another replica's exported snapshot")
	fmt.Println("  export <file>           Write this replica's current state to file")
	fmt.Println("  site                    Print this replica's site id")
	fmt.Println("  help                    Show this help")
	fmt.Println("  exit / quit / q         Exit (autosaves)")
}

func (r *REPL) cmdInsert(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: insert <index> <char>")

		return
	}

	idx, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("Error parsing index: %v\n", err)

		return
	}

	chars := []rune(args[1])
	if len(chars) != 1 {
		fmt.Println("Error: <char> must be a single character")

		return
	}

	if _, err := r.r.InsertAt(idx, chars[0]); err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	r.dirty = true

	fmt.Println("OK")
}

func (r *REPL) cmdDelete(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: delete <index>")

		return
	}

	idx, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("Error parsing index: %v\n", err)

		return
	}

	if _, ok := r.r.DeleteAt(idx); !ok {
		fmt.Println("Error: index out of range")

		return
	}

	r.dirty = true

	fmt.Println("OK")
}

func (r *REPL) cmdShow() {
	out := make([]rune, 0, r.r.Len())
	for v := range r.r.All() {
		out = append(out, v)
	}

	fmt.Printf("%q\n", string(out))
}

func (r *REPL) cmdEntries() {
	entries := r.r.Entries()
	if len(entries) == 0 {
		fmt.Println("(empty)")

		return
	}

	for i, e := range entries {
		fmt.Printf("%3d. id=%s dot={site:%d counter:%d} payload=%q\n", i, e.ID, e.Dot.Site, e.Dot.Counter, e.Payload)
	}
}

func (r *REPL) cmdSave() {
	if err := snapshot.Save(r.fs, r.cfg.Snapshot, r.r); err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	r.dirty = false

	fmt.Printf("OK: saved to %s\n", r.cfg.Snapshot)
}

func (r *REPL) cmdMerge(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: merge <file>")

		return
	}

	applied, err := snapshot.MergeFrom(r.fs, args[0], r.r)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	r.dirty = true

	fmt.Printf("OK: applied %d new operation(s) from %s\n", applied, args[0])
}

func (r *REPL) cmdExport(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: export <file>")

		return
	}

	if err := snapshot.Save(r.fs, args[0], r.r); err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("OK: exported to %s\n", args[0])
}
