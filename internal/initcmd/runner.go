package initcmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/unkn0wn-root/envconf/internal/errdef"
)

// runner applies one template to a directory: every file is planned before
// anything is written, then outputs are recorded in .gitignore.
type runner struct {
	fs FS
	o  Opt
	t  template
}

func (r *runner) run() error {
	if err := r.ensureDir(); err != nil {
		return err
	}
	ops, err := r.plan()
	if err != nil {
		return err
	}
	for _, o := range ops {
		if err := r.apply(o); err != nil {
			return err
		}
	}
	if r.o.NoGitignore || len(r.t.Ignore) == 0 {
		return nil
	}
	return r.updateGitignore()
}

func (r *runner) ensureDir() error {
	d := r.o.Dir
	info, err := r.fs.Stat(d)
	switch {
	case err == nil && !info.IsDir():
		return errdef.New(errdef.CodeFilesystem, "init: %s is not a directory", d)
	case err == nil:
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return errdef.Wrap(errdef.CodeFilesystem, err, "init: stat %s", d)
	case r.o.DryRun:
		return nil
	}
	if err := r.fs.MkdirAll(d, dirPerm); err != nil {
		return errdef.Wrap(errdef.CodeWrite, err, "init: create %s", d)
	}
	return nil
}

// plan decides what happens to every file of the template. Files that
// already hold the exact content are skipped; any other existing file is a
// conflict unless Force is set.
func (r *runner) plan() ([]op, error) {
	var (
		ops       []op
		conflicts []string
	)
	for _, f := range r.t.Files {
		rel, abs, err := targetPath(r.o.Dir, f.Path)
		if err != nil {
			return nil, err
		}

		act, err := r.action(abs, f.Data)
		switch {
		case errors.Is(err, errIsDir):
			conflicts = append(conflicts, rel+" (dir)")
			continue
		case err != nil:
			return nil, errdef.Wrap(errdef.CodeFilesystem, err, "init: stat %s", rel)
		case act == ActionOverwrite && !r.o.Force:
			conflicts = append(conflicts, rel)
			continue
		}
		ops = append(ops, op{Action: act, Path: rel, Abs: abs, Mode: f.Mode, Data: f.Data})
	}

	if len(conflicts) > 0 {
		return nil, errdef.New(
			errdef.CodeFilesystem,
			"init: files already exist: %s (use --force to overwrite)",
			strings.Join(conflicts, ", "),
		)
	}
	return ops, nil
}

var errIsDir = errors.New("is a directory")

func (r *runner) action(abs, data string) (Action, error) {
	info, err := r.fs.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ActionCreate, nil
	case err != nil:
		return "", err
	case info.IsDir():
		return "", errIsDir
	}
	cur, err := r.fs.ReadFile(abs)
	if err != nil {
		return "", err
	}
	if string(cur) == data {
		return ActionSkip, nil
	}
	return ActionOverwrite, nil
}

func (r *runner) apply(o op) error {
	if !r.o.DryRun && o.Action != ActionSkip {
		if err := r.fs.MkdirAll(filepath.Dir(o.Abs), dirPerm); err != nil {
			return errdef.Wrap(errdef.CodeWrite, err, "init: create dir for %s", o.Path)
		}
		if err := r.commit(o.Abs, o.Mode, o.Data, o.Action == ActionOverwrite); err != nil {
			return errdef.Wrap(errdef.CodeWrite, err, "init: write %s", o.Path)
		}
	}
	return r.report(o.Action, o.Path)
}

// commit writes data to a temp file beside path and renames it into place.
// Unless replace is set an existing file at path is kept and fs.ErrExist
// returned.
func (r *runner) commit(path string, mode fs.FileMode, data string, replace bool) error {
	tmp, err := r.stage(filepath.Dir(path), mode, data)
	if err != nil {
		return err
	}
	if err := r.place(tmp, path, replace); err != nil {
		_ = r.fs.Remove(tmp)
		return err
	}
	return nil
}

func (r *runner) stage(dir string, mode fs.FileMode, data string) (string, error) {
	f, err := r.fs.CreateTemp(dir, tempFilePrefix)
	if err != nil {
		return "", err
	}
	name := f.Name()
	werr := fill(f, mode, data)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = r.fs.Remove(name)
		return "", werr
	}
	return name, nil
}

func fill(f TempFile, mode fs.FileMode, data string) error {
	if err := f.Chmod(mode); err != nil {
		return err
	}
	if _, err := io.WriteString(f, data); err != nil {
		return err
	}
	return f.Sync()
}

func (r *runner) place(tmp, path string, replace bool) error {
	if !replace {
		_, err := r.fs.Stat(path)
		switch {
		case err == nil:
			return fs.ErrExist
		case !errors.Is(err, fs.ErrNotExist):
			return err
		}
	}
	err := r.fs.Rename(tmp, path)
	if err == nil || !replace || !errors.Is(err, fs.ErrExist) {
		return err
	}
	if err := r.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return r.fs.Rename(tmp, path)
}

func (r *runner) report(act Action, path string) error {
	if r.o.Out == nil || act == "" {
		return nil
	}
	prefix := ""
	if r.o.DryRun {
		prefix = "dry-run: "
	}
	if _, err := fmt.Fprintf(r.o.Out, "%s%s %s\n", prefix, act, path); err != nil {
		return fmt.Errorf("init: report %s %s: %w", act, path, err)
	}
	return nil
}
