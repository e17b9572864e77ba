package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/pflag"

	"github.com/unkn0wn-root/envconf/internal/initcmd"
)

var initUsage = heredoc.Doc(`
	Usage: envconf init [flags] [dir]

	Writes a starter envconf.toml and dotenv template, or with --scan declares
	the templates already present in the directory.

	Flags:
`)

func runInit(args []string, e env) error {
	var (
		dir       string
		tpl       string
		force     bool
		dry       bool
		list      bool
		noGi      bool
		scan      bool
		recursive bool
	)

	fs := pflag.NewFlagSet("init", pflag.ContinueOnError)
	fs.SetOutput(e.errOut)
	fs.Usage = func() {
		fmt.Fprint(e.errOut, initUsage)
		fs.PrintDefaults()
		fmt.Fprintln(e.errOut)
		fmt.Fprintln(e.errOut, "Templates:")
		_ = initcmd.Run(initcmd.Opt{List: true, Out: e.errOut})
	}

	fs.StringVar(&dir, "dir", initcmd.DefaultDir, "Target directory")
	fs.StringVar(&tpl, "template", initcmd.DefaultTemplate, "Template to use")
	fs.BoolVar(&force, "force", false, "Overwrite existing files")
	fs.BoolVar(&dry, "dry-run", false, "Print actions without writing files")
	fs.BoolVar(&list, "list", false, "List available templates")
	fs.BoolVar(&noGi, "no-gitignore", false, "Do not touch .gitignore")
	fs.BoolVar(&scan, "scan", false, "Declare existing dotenv templates instead of writing a starter")
	fs.BoolVar(&recursive, "recursive", false, "Scan subdirectories (with --scan)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if list {
		return initcmd.Run(initcmd.Opt{List: true, Out: e.out})
	}

	extra := fs.Args()
	if len(extra) > 0 {
		if !fs.Changed("dir") && len(extra) == 1 {
			dir = extra[0]
		} else {
			return fmt.Errorf("init: unexpected args: %s", strings.Join(extra, " "))
		}
	}

	return initcmd.Run(initcmd.Opt{
		Dir:         dir,
		Template:    tpl,
		Force:       force,
		DryRun:      dry,
		NoGitignore: noGi,
		Scan:        scan,
		Recursive:   recursive,
		Out:         e.out,
	})
}
