package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkryger/commentary/internal/config"
	"github.com/pkryger/commentary/internal/document"
	"github.com/pkryger/commentary/internal/region"
	"github.com/pkryger/commentary/internal/render"
	"github.com/pkryger/commentary/internal/resolve"
	"github.com/pkryger/commentary/internal/syncer"
)

const rootLongDesc = `
commentary keeps a project's README in sync with the ";;; Commentary:"
block of its Emacs Lisp distributable.

The README is rendered into a comment-prefixed plain-text block and either
written into the target file (sync), printed (show), or compared against
the block already embedded there (check). The target file is resolved from
the README's location unless named explicitly.

Both positional arguments are optional: the first is the source document
(default README.md, or project.source from .commentary.yaml), the second a
target file name hint probed under the project root and its lisp/ and src/
subdirectories.
`

type app struct {
	stdout     io.Writer
	configPath string
	rootDir    string
	targetPath string
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	app := &app{stdout: stdout}
	root := &cobra.Command{
		Use:           "commentary [command] [README] [target-name]",
		Short:         "Keep a README in sync with an embedded Commentary block",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		// Batch invocation without a subcommand verifies, matching CI use.
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.check(args)
		},
	}
	root.SetOut(stdout)

	pf := root.PersistentFlags()
	pf.StringVar(&app.configPath, "config", ".commentary.yaml", "path to the project configuration file")
	pf.StringVar(&app.rootDir, "root", "", "project root (default: the source document's directory)")
	pf.StringVarP(&app.targetPath, "target", "t", "", "explicit target file, bypassing resolution heuristics")

	root.AddCommand(
		&cobra.Command{
			Use:           "sync [README] [target-name]",
			Short:         "Render the source document and write it into the target's Commentary block",
			Args:          cobra.MaximumNArgs(2),
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.sync(args)
			},
		},
		&cobra.Command{
			Use:           "check [README] [target-name]",
			Short:         "Verify the target's Commentary block matches a fresh render",
			Args:          cobra.MaximumNArgs(2),
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.check(args)
			},
		},
		&cobra.Command{
			Use:           "show [README]",
			Short:         "Render the source document and print the Commentary block",
			Args:          cobra.MaximumNArgs(1),
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.show(args)
			},
		},
	)
	return root
}

// invocation is everything a single sync or check run needs, assembled
// from flags, positionals and the configuration file.
type invocation struct {
	doc    *document.Document
	target string
	cfg    syncer.Config
}

func (a *app) loadDocument(args []string) (*document.Document, *config.Config, string, error) {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return nil, nil, "", err
	}
	source := cfg.Project.Source
	if len(args) > 0 && args[0] != "" {
		source = args[0]
	}
	doc, err := document.Load(source)
	if err != nil {
		return nil, nil, "", err
	}
	return doc, cfg, source, nil
}

func (a *app) prepare(args []string) (*invocation, error) {
	doc, cfg, source, err := a.loadDocument(args)
	if err != nil {
		return nil, err
	}

	root := a.rootDir
	if root == "" {
		root = cfg.Project.Root
	}
	if root == "" {
		abs, err := filepath.Abs(source)
		if err != nil {
			return nil, fmt.Errorf("failed to locate project root for %s: %w", source, err)
		}
		root = filepath.Dir(abs)
	}

	hint := ""
	if len(args) > 1 {
		hint = args[1]
	}
	target, err := resolve.Target(doc, resolve.Options{
		Explicit: a.targetPath,
		Hint:     hint,
		Override: cfg.Target.File,
		Root:     root,
		Ext:      cfg.Target.Extension,
		Dirs:     cfg.Target.Dirs,
	})
	if err != nil {
		return nil, err
	}

	return &invocation{
		doc:    doc,
		target: target,
		cfg:    syncerConfig(cfg),
	}, nil
}

func syncerConfig(cfg *config.Config) syncer.Config {
	return syncer.Config{
		Render: render.Config{
			Prefix: cfg.Format.CommentPrefix,
			Width:  cfg.Format.FillColumn,
		},
		Region: region.Config{
			CommentaryMarker: cfg.Format.CommentaryMarker,
			CodeMarker:       cfg.Format.CodeMarker,
		},
	}
}

func (a *app) sync(args []string) error {
	inv, err := a.prepare(args)
	if err != nil {
		return err
	}
	if err := syncer.Update(inv.doc, inv.target, inv.cfg); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "✅ Updated commentary block in %s\n", inv.target)
	return nil
}

func (a *app) check(args []string) error {
	inv, err := a.prepare(args)
	if err != nil {
		return err
	}
	if err := syncer.Check(inv.doc, inv.target, inv.cfg); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "✅ %s is up to date\n", inv.target)
	return nil
}

func (a *app) show(args []string) error {
	doc, cfg, _, err := a.loadDocument(args)
	if err != nil {
		return err
	}
	block, err := render.Commentary(doc, syncerConfig(cfg).Render)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, block.Text())
	return nil
}
