// shparse parses POSIX shell scripts and can reformat, diff or dump them.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"github.com/google/renameio/v2"
	diffpkg "github.com/pkg/diff"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"mvdan.cc/editorconfig"

	"mrshgo.dev/sh/parser"
	"mrshgo.dev/sh/printer"
)

var (
	list   = flag.Bool("l", false, "list files whose formatting differs")
	write  = flag.Bool("w", false, "write result to file instead of stdout")
	diff   = flag.Bool("d", false, "error with a diff when the formatting differs")
	toAST  = flag.Bool("to-json", false, "print the parsed tree to stdout as JSON")
	indent = flag.Uint("i", 0, "0 for tabs (default), >0 for number of spaces")

	// indentSet records whether -i was passed explicitly, so an
	// EditorConfig indent_size can still take effect when it wasn't.
	indentSet bool
)

var errChangedWithDiff = errors.New("")

var ecQuery = editorconfig.Query{
	FileCache:   make(map[string]*editorconfig.File),
	RegexpCache: make(map[string]*regexp.Regexp),
}

var color bool

func main() { os.Exit(run()) }

// run holds the entirety of main's logic and reports a process exit status,
// so that testscript can register it as a subcommand instead of needing a
// built binary on $PATH.
func run() int {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: shparse [flags] [path ...]

shparse parses POSIX shell scripts. If the only argument is a dash ('-')
or no arguments are given, standard input is used. If a given path is a
directory, every file under it is visited.

  -l             list files whose formatting differs
  -w             write result to file instead of stdout
  -d             error with a diff when the formatting differs
  -i uint        0 for tabs (default), >0 for number of spaces
  --to-json      print the parsed tree to stdout as JSON

Per-directory .editorconfig files may also supply indent_style/
indent_size for the [shell] section.
`)
	}
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			indentSet = true
		}
	})

	if os.Getenv("FORCE_COLOR") != "" {
		color = true
	} else if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
	} else if term.IsTerminal(int(os.Stdout.Fd())) {
		color = true
	}

	if flag.NArg() == 0 || (flag.NArg() == 1 && flag.Arg(0) == "-") {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := process("<standard input>", src); err != nil {
			if err != errChangedWithDiff {
				fmt.Fprintln(os.Stderr, err)
			}
			return 1
		}
		return 0
	}

	var paths []string
	for _, arg := range flag.Args() {
		err := filepath.WalkDir(arg, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() && vcsDir.MatchString(entry.Name()) {
				return filepath.SkipDir
			}
			if entry.IsDir() {
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	// One goroutine per path, with at most one per available core running
	// at a time; each writes only its own slot of results, so this keeps
	// file reads and parses overlapped without any result ever needing to
	// be merged back together.
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	results := make([]error, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				results[i] = err
				return nil
			}
			results[i] = process(path, src)
			return nil
		})
	}
	g.Wait()

	status := 0
	for i, err := range results {
		switch err {
		case nil:
		case errChangedWithDiff:
			status = 1
		default:
			fmt.Fprintf(os.Stderr, "%s: %v\n", paths[i], err)
			status = 1
		}
	}
	return status
}

var vcsDir = regexp.MustCompile(`^\.(git|svn|hg)$`)

func spacesFor(path string) uint {
	if indentSet {
		return *indent
	}
	props, err := ecQuery.Find(path, []string{"shell"})
	if err != nil || props.Get("indent_style") != "space" {
		return *indent
	}
	if n := props.IndentSize(); n > 0 {
		return uint(n)
	}
	return 8
}

func process(path string, src []byte) error {
	p := parser.NewData(src)
	prog, ok := p.Parse()
	if !ok {
		return p.Err()
	}

	if *toAST {
		return encodeJSON(os.Stdout, prog)
	}

	var buf bytes.Buffer
	cfg := printer.Config{Spaces: int(spacesFor(path))}
	if err := cfg.Fprint(&buf, prog); err != nil {
		return err
	}
	res := buf.Bytes()

	if bytes.Equal(src, res) {
		if !*list && !*write && !*diff {
			os.Stdout.Write(res)
		}
		return nil
	}

	if *list {
		fmt.Println(path)
	}
	if *write {
		info, err := os.Lstat(path)
		if err != nil {
			return err
		}
		if err := renameio.WriteFile(path, res, info.Mode().Perm()); err != nil {
			return err
		}
	}
	if *diff {
		var diffBuf bytes.Buffer
		if err := diffpkg.Text(path+".orig", path, bytes.NewReader(src), bytes.NewReader(res), &diffBuf); err != nil {
			return err
		}
		writeDiff(os.Stdout, diffBuf.Bytes())
		return errChangedWithDiff
	}
	if !*list && !*write {
		os.Stdout.Write(res)
	}
	return nil
}

func writeDiff(w io.Writer, diffText []byte) {
	if !color {
		w.Write(diffText)
		return
	}
	current := terminalBold
	io.WriteString(w, current)
	for i, line := range bytes.SplitAfter(diffText, []byte("\n")) {
		last := current
		switch {
		case i < 3: // filename header lines stay bold
		case bytes.HasPrefix(line, []byte("@@")):
			current = terminalCyan
		case bytes.HasPrefix(line, []byte("-")):
			current = terminalRed
		case bytes.HasPrefix(line, []byte("+")):
			current = terminalGreen
		default:
			current = terminalReset
		}
		if current != last {
			io.WriteString(w, current)
		}
		w.Write(line)
	}
}

const (
	terminalGreen = "[32m"
	terminalRed   = "[31m"
	terminalCyan  = "[36m"
	terminalReset = "[0m"
	terminalBold  = "[1m"
)
