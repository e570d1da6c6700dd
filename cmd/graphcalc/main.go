package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-isatty"

	"github.com/zephyrtronium/graphcalc"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		with         [][2]string
		asjson, echo bool
		verbose      bool
		prec         int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file, run before any args (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string for values")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.IntVar(&prec, "p", 64, "precision of ln, log, and sqrt in bits")
	flag.BoolVar(&asjson, "json", false, "print results as JSON")
	flag.BoolVar(&verbose, "v", false, "report why commands fail")
	flag.BoolVar(&echo, "echo", false, "print parse trees of expressions")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	opts := []graphcalc.SessionOption{graphcalc.Prec(uint(prec))}
	for _, d := range with {
		nm, sz := utf8.DecodeRuneInString(d[0])
		if sz == 0 || sz != len(d[0]) {
			log.Fatalf("variable names must be one letter, not %q", d[0])
		}
		r, err := graphcalc.EvalString(d[1], graphcalc.Prec(uint(prec)))
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		opts = append(opts, graphcalc.SetVar(nm, r))
	}
	if verbose {
		opts = append(opts, graphcalc.Logger(log.New(os.Stderr, "", 0)))
	}
	s := graphcalc.NewSession(nil, opts...)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	p := printer{w: out, verb: verb + "\n", json: asjson}

	// Commands from -in run first, then the arguments. With neither, stdin.
	if inname != "" || flag.NArg() == 0 {
		f, prompt := os.Stdin, isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		if inname != "" && inname != "-" {
			var err error
			f, err = os.Open(inname)
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()
			prompt = false
		}
		if err := script(s, &p, f, prompt, echo); err != nil {
			log.Fatal(err)
		}
	}
	for _, arg := range flag.Args() {
		run(s, &p, arg, echo)
	}
}

// script runs each non-blank line of in as a command. If prompt is set, it
// writes a prompt before reading each line.
func script(s *graphcalc.Session, p *printer, in io.Reader, prompt, echo bool) error {
	sc := bufio.NewScanner(in)
	for {
		if prompt {
			io.WriteString(p.w, "> ")
			p.flush()
		}
		if !sc.Scan() {
			break
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		run(s, p, line, echo)
		if prompt {
			p.flush()
		}
	}
	return sc.Err()
}

// run executes one command line and prints its result.
func run(s *graphcalc.Session, p *printer, line string, echo bool) {
	if args, ok := strings.CutPrefix(strings.TrimSpace(line), ":intercepts"); ok {
		f := strings.Fields(args)
		if len(f) != 2 || utf8.RuneCountInString(f[0]) != 1 || utf8.RuneCountInString(f[1]) != 1 {
			p.fail(line)
			return
		}
		a, _ := utf8.DecodeRuneInString(f[0])
		b, _ := utf8.DecodeRuneInString(f[1])
		roots, ok := s.Intercepts(a, b)
		if !ok {
			p.fail(line)
			return
		}
		p.roots(roots)
		return
	}
	if echo && !strings.Contains(line, "=") {
		if e, err := graphcalc.Parse(line); err == nil {
			fmt.Fprintf(p.w, "%v : ", e)
		}
	}
	r := s.Evaluate(line)
	if r == nil {
		p.fail(line)
		return
	}
	p.result(r)
}

type printer struct {
	w    io.Writer
	verb string
	json bool
}

// flush flushes p's writer if it is buffered.
func (p *printer) flush() {
	if f, ok := p.w.(interface{ Flush() error }); ok {
		f.Flush()
	}
}

func (p *printer) fail(line string) {
	if p.json {
		fmt.Fprintln(p.w, "null")
		return
	}
	fmt.Fprintf(p.w, "error: %s\n", line)
}

func (p *printer) result(r graphcalc.Result) {
	if p.json {
		b, err := json.Marshal(r)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(p.w, "%s\n", b)
		return
	}
	switch r := r.(type) {
	case *graphcalc.Value:
		if r.Name != "" {
			fmt.Fprintf(p.w, "%s = ", r.Name)
		}
		fmt.Fprintf(p.w, p.verb, r.Value)
	case *graphcalc.Graph:
		for _, pt := range r.Points {
			fmt.Fprintf(p.w, "%g\t%g\n", pt.X, pt.Y)
		}
	}
}

func (p *printer) roots(roots []float64) {
	if p.json {
		if roots == nil {
			roots = []float64{}
		}
		b, err := json.Marshal(roots)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(p.w, "%s\n", b)
		return
	}
	for _, x := range roots {
		fmt.Fprintf(p.w, p.verb, x)
	}
}
