// Command viewdemo opens a file in a view and draws it to the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	gdtcell "github.com/gdamore/tcell/v2"

	tcellbackend "github.com/noctua-editor/view/internal/backend/tcell"
	"github.com/noctua-editor/view/internal/text"
	"github.com/noctua-editor/view/internal/view"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	files := flag.Args()
	var content string
	if len(files) > 0 {
		data, err := os.ReadFile(files[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "viewdemo: %v\n", err)
			return 1
		}
		content = string(data)
	}

	cfg, err := view.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "viewdemo: %v\n", err)
		return 1
	}

	term, err := tcellbackend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "viewdemo: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "viewdemo: failed to init terminal: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	buf := text.NewBufferFromString(content)
	v := view.New(buf, term, nil)
	cfg.Apply(v)

	width, height := term.Size()
	v.Resize(width, height)

	for {
		ev := term.PollEvent()
		switch e := ev.(type) {
		case *gdtcell.EventResize:
			w, h := e.Size()
			v.Resize(w, h)
		case *gdtcell.EventKey:
			if e.Key() == gdtcell.KeyEscape || e.Key() == gdtcell.KeyCtrlC || e.Rune() == 'q' {
				return 0
			}
		}
	}
}
