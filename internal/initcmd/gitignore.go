package initcmd

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/unkn0wn-root/envconf/internal/errdef"
)

// updateGitignore adds every output that is not ignored yet in a single
// write and reports one line per output.
func (r *runner) updateGitignore() error {
	p := filepath.Join(r.o.Dir, gitignoreFile)
	cur, mode, exists, err := r.readGitignore(p)
	if err != nil {
		return err
	}

	var missing []string
	acts := make([]Action, len(r.t.Ignore))
	for i, entry := range r.t.Ignore {
		switch {
		case ignores(cur, entry) || slices.Contains(missing, entry):
			acts[i] = ActionSkip
			continue
		case exists || len(missing) > 0:
			acts[i] = ActionAppend
		default:
			acts[i] = ActionCreate
		}
		missing = append(missing, entry)
	}

	if len(missing) > 0 && !r.o.DryRun {
		if err := r.commit(p, mode, withEntries(cur, missing), true); err != nil {
			return errdef.Wrap(errdef.CodeWrite, err, "init: update %s", gitignoreFile)
		}
	}
	for i, entry := range r.t.Ignore {
		if err := r.report(acts[i], gitignoreFile+" ("+entry+")"); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) readGitignore(p string) (string, fs.FileMode, bool, error) {
	data, err := r.fs.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", filePerm, false, nil
	}
	if err != nil {
		return "", 0, false, errdef.Wrap(errdef.CodeFilesystem, err, "init: read %s", gitignoreFile)
	}
	info, err := r.fs.Stat(p)
	if err != nil {
		return "", 0, false, errdef.Wrap(errdef.CodeFilesystem, err, "init: stat %s", gitignoreFile)
	}
	return string(data), info.Mode().Perm(), true, nil
}

func withEntries(data string, entries []string) string {
	var b strings.Builder
	b.WriteString(data)
	if data != "" && !strings.HasSuffix(data, "\n") {
		b.WriteByte('\n')
	}
	for _, e := range entries {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	return b.String()
}

// ignores reports whether data already lists entry, with or without a
// leading slash and ignoring trailing comments.
func ignores(data, entry string) bool {
	entry = strings.TrimPrefix(strings.TrimSpace(entry), "/")
	if entry == "" {
		return true
	}
	for line := range strings.SplitSeq(data, "\n") {
		pattern, _, _ := strings.Cut(line, "#")
		if strings.TrimPrefix(strings.TrimSpace(pattern), "/") == entry {
			return true
		}
	}
	return false
}
