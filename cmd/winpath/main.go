// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

// Winpath runs Windows path operations from the command line.
//
// Usage:
//
//	winpath [-config file] [-json] [-v N] <op> [args...]
//
// An argument spelled <nil> is passed as an absent path, and absent results
// print as <nil>.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/woozymasta/winpath"
	"github.com/woozymasta/winpath/config"
)

const nilText = "<nil>"

var errUsage = errors.New("usage")

// command is one CLI operation.
type command struct {
	run     func(env *cliEnv, args []string) error
	usage   string
	minArgs int
	maxArgs int // -1 for variadic
}

// cliEnv carries the engine and output streams of one invocation.
type cliEnv struct {
	fp     *winpath.Filepath
	out    io.Writer
	cfg    *config.Config
	json   bool
	force  bool
	config string
}

var commands = map[string]command{
	"clean":        {run: textOp(winpath.Clean), usage: "clean <path>", minArgs: 1, maxArgs: 1},
	"dir":          {run: textOp(winpath.Dir), usage: "dir <path>", minArgs: 1, maxArgs: 1},
	"base":         {run: textOp(winpath.Base), usage: "base <path>", minArgs: 1, maxArgs: 1},
	"ext":          {run: textOp(winpath.Ext), usage: "ext <path>", minArgs: 1, maxArgs: 1},
	"volume":       {run: textOp(winpath.VolumeName), usage: "volume <path>", minArgs: 1, maxArgs: 1},
	"fromslash":    {run: textOp(winpath.FromSlash), usage: "fromslash <path>", minArgs: 1, maxArgs: 1},
	"toslash":      {run: textOp(winpath.ToSlash), usage: "toslash <path>", minArgs: 1, maxArgs: 1},
	"join":         {run: runJoin, usage: "join <elem>...", minArgs: 0, maxArgs: -1},
	"split":        {run: runSplit, usage: "split <path>", minArgs: 1, maxArgs: 1},
	"isabs":        {run: runIsAbs, usage: "isabs <path>", minArgs: 1, maxArgs: 1},
	"splitlist":    {run: runSplitList, usage: "splitlist <list>", minArgs: 1, maxArgs: 1},
	"prefix":       {run: runPrefix, usage: "prefix <path>", minArgs: 1, maxArgs: 1},
	"compile":      {run: runCompile, usage: "compile <pattern>", minArgs: 1, maxArgs: 1},
	"match":        {run: runMatch, usage: "match <pattern> <name>", minArgs: 2, maxArgs: 2},
	"abs":          {run: runAbs, usage: "abs <path>", minArgs: 1, maxArgs: 1},
	"rel":          {run: runRel, usage: "rel <base> <target>", minArgs: 2, maxArgs: 2},
	"glob":         {run: runGlob, usage: "glob <pattern>", minArgs: 1, maxArgs: 1},
	"walk":         {run: runWalk, usage: "walk <root> [rule]...", minArgs: 1, maxArgs: -1},
	"evalsymlinks": {run: runEvalSymlinks, usage: "evalsymlinks <path>", minArgs: 1, maxArgs: 1},
	"getwd":        {run: runGetwd, usage: "getwd", minArgs: 0, maxArgs: 0},
	"init-config":  {run: runInitConfig, usage: "init-config [file]", minArgs: 0, maxArgs: 1},
}

func main() {
	code := run(os.Args[1:], os.Stdout, os.Stderr)
	glog.Flush()
	os.Exit(code)
}

// run parses flags, loads configuration and executes one operation.
// It returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("winpath", flag.ContinueOnError)
	fs.SetOutput(stderr)

	env := &cliEnv{out: stdout}
	fs.StringVar(&env.config, "config", "", "configuration file (default: "+config.GetDefaultConfigPath()+")")
	fs.BoolVar(&env.json, "json", false, "print structured results as JSON")
	fs.BoolVar(&env.force, "force", false, "overwrite an existing file in init-config")

	// glog registers -v, -logtostderr and friends on flag.CommandLine.
	explicitV := false
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		fs.Var(&trackedValue{Value: f.Value, set: f.Name == "v", seen: &explicitV}, f.Name, f.Usage)
	})

	fs.Usage = func() { printUsage(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	if fs.NArg() == 0 {
		printUsage(fs, stderr)
		return 2
	}

	name, opArgs := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "winpath: unknown operation %q\n", name)
		printUsage(fs, stderr)
		return 2
	}

	if len(opArgs) < cmd.minArgs || (cmd.maxArgs >= 0 && len(opArgs) > cmd.maxArgs) {
		fmt.Fprintf(stderr, "usage: winpath %s\n", cmd.usage)
		return 2
	}

	if name != "init-config" {
		cfg, err := config.Load(env.config)
		if err != nil {
			fmt.Fprintf(stderr, "winpath: %v\n", err)
			return 1
		}

		if !explicitV {
			if err := config.ApplyLogging(&cfg.Logging); err != nil {
				fmt.Fprintf(stderr, "winpath: %v\n", err)
				return 1
			}
		}

		fp, err := config.NewFilepath(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "winpath: %v\n", err)
			return 1
		}

		env.cfg, env.fp = cfg, fp
	}

	glog.V(2).Infof("cli.run: op=%s, args=%d", name, len(opArgs))

	if err := cmd.run(env, opArgs); err != nil {
		fmt.Fprintf(stderr, "winpath: %s: %v\n", name, err)
		return 1
	}

	return 0
}

// trackedValue records whether a forwarded flag was given.
type trackedValue struct {
	flag.Value
	seen *bool
	set  bool
}

func (v *trackedValue) Set(s string) error {
	if v.set {
		*v.seen = true
	}

	return v.Value.Set(s)
}

// IsBoolFlag keeps -logtostderr usable without a value.
func (v *trackedValue) IsBoolFlag() bool {
	b, ok := v.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: winpath [flags] <op> [args...]")
	fmt.Fprintln(w, "\noperations:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}

	fmt.Fprintln(w, "\nflags:")
	fs.PrintDefaults()
}

// argText maps the <nil> spelling to an absent path.
func argText(s string) winpath.Text {
	if s == nilText {
		return winpath.Null
	}

	return winpath.Of(s)
}

func formatText(t winpath.Text) string {
	if t.IsNull() {
		return nilText
	}

	return t.String()
}

func (env *cliEnv) println(s string) {
	fmt.Fprintln(env.out, s)
}

// emit prints v as JSON when -json is set, otherwise calls plain.
func (env *cliEnv) emit(v any, plain func()) error {
	if !env.json {
		plain()
		return nil
	}

	enc := json.NewEncoder(env.out)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func textOp(fn func(winpath.Text) winpath.Text) func(*cliEnv, []string) error {
	return func(env *cliEnv, args []string) error {
		res := fn(argText(args[0]))
		return env.emit(res, func() { env.println(formatText(res)) })
	}
}

func runJoin(env *cliEnv, args []string) error {
	elems := make([]winpath.Text, len(args))
	for i, a := range args {
		elems[i] = argText(a)
	}

	res := winpath.Join(elems...)
	return env.emit(res, func() { env.println(formatText(res)) })
}

func runSplit(env *cliEnv, args []string) error {
	dir, file := winpath.Split(argText(args[0]))
	return env.emit(map[string]winpath.Text{"dir": dir, "file": file}, func() {
		env.println(formatText(dir))
		env.println(formatText(file))
	})
}

func runIsAbs(env *cliEnv, args []string) error {
	res := winpath.IsAbs(argText(args[0]))
	return env.emit(res, func() { env.println(strconv.FormatBool(res)) })
}

func runSplitList(env *cliEnv, args []string) error {
	list := winpath.SplitList(argText(args[0]))
	if list == nil {
		list = []string{}
	}

	return env.emit(list, func() {
		for _, s := range list {
			env.println(s)
		}
	})
}

func runPrefix(env *cliEnv, args []string) error {
	info := winpath.ParsePrefix(args[0])
	return env.emit(map[string]any{"kind": info.Kind.String(), "length": info.Length}, func() {
		env.println(info.Kind.String() + " " + strconv.Itoa(info.Length))
	})
}

func runCompile(env *cliEnv, args []string) error {
	opts := winpath.CompileOptions{}
	if env.cfg != nil {
		check, err := winpath.ParseRangeCheck(env.cfg.Pattern.RangeCheck)
		if err != nil {
			return err
		}

		opts.RangeCheck = check
	}

	p, err := winpath.Compile(args[0], opts)
	if err != nil {
		return err
	}

	return env.emit(map[string]string{"expr": p.Expr(), "filter": p.Filter()}, func() {
		env.println(p.Expr())
		env.println(p.Filter())
	})
}

func runMatch(env *cliEnv, args []string) error {
	ok, err := env.fp.Match(argText(args[0]), argText(args[1]))
	if err != nil {
		return err
	}

	return env.emit(ok, func() { env.println(strconv.FormatBool(ok)) })
}

func runAbs(env *cliEnv, args []string) error {
	res, err := env.fp.Abs(argText(args[0]))
	if err != nil {
		return err
	}

	return env.emit(res, func() { env.println(formatText(res)) })
}

func runRel(env *cliEnv, args []string) error {
	res, err := env.fp.Rel(argText(args[0]), argText(args[1]))
	if err != nil {
		return err
	}

	return env.emit(res, func() { env.println(formatText(res)) })
}

func runGlob(env *cliEnv, args []string) error {
	matches, err := env.fp.Glob(argText(args[0]))
	if err != nil {
		return err
	}

	if matches == nil {
		matches = []string{}
	}

	return env.emit(matches, func() {
		for _, m := range matches {
			env.println(m)
		}
	})
}

// runWalk prints one entry per line, directories with a trailing separator.
// Extra arguments are rules in the rules file syntax.
func runWalk(env *cliEnv, args []string) error {
	rules, err := winpath.ParseRulesString(strings.Join(args[1:], "\n"))
	if err != nil {
		return err
	}

	seq, err := env.fp.Walk(args[0], winpath.WalkOptions{Rules: rules})
	if err != nil {
		return err
	}

	var failed int
	for entry, err := range seq {
		if err != nil {
			failed++
			glog.Warningf("cli.walk: %v", err)
			continue
		}

		if env.json {
			if err := env.emit(entry, nil); err != nil {
				return err
			}
			continue
		}

		name := entry.RelativePath
		if entry.IsDir && name != "." {
			name += string(winpath.Separator)
		}
		env.println(name)
	}

	if failed > 0 {
		return fmt.Errorf("%d subtree(s) could not be read", failed)
	}

	return nil
}

func runEvalSymlinks(env *cliEnv, args []string) error {
	res, err := env.fp.EvalSymlinks(argText(args[0]))
	if err != nil {
		return err
	}

	return env.emit(res, func() { env.println(formatText(res)) })
}

func runGetwd(env *cliEnv, _ []string) error {
	wd, err := env.fp.Getwd()
	if err != nil {
		return err
	}

	return env.emit(wd, func() { env.println(formatText(wd)) })
}

func runInitConfig(env *cliEnv, args []string) error {
	path := env.config
	if len(args) > 0 {
		path = args[0]
	}

	written, err := config.WriteDefault(path, env.force)
	if err != nil {
		return err
	}

	return env.emit(map[string]string{"path": written}, func() { env.println(written) })
}
