package initcmd

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// TemplateStore resolves starter templates by name.
type TemplateStore interface {
	List() []template
	Find(name string) (template, bool)
	Names() []string
	Width() int
}

// BuiltinTemplates serves the templates compiled into the binary.
type BuiltinTemplates struct{}

func (BuiltinTemplates) List() []template { return cloneTemplates(templates) }

func (BuiltinTemplates) Find(name string) (template, bool) {
	name = normalizeTemplateName(name)
	for _, t := range templates {
		if t.Name == name {
			return cloneTemplates([]template{t})[0], true
		}
	}
	return template{}, false
}

func (BuiltinTemplates) Names() []string {
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Name)
	}
	return names
}

func (s BuiltinTemplates) Width() int {
	w := 0
	for _, name := range s.Names() {
		w = max(w, runewidth.StringWidth(name))
	}
	return w
}

var templates = []template{
	{
		Name:        "minimal",
		Description: describeTemplate(fileConfig, fileTemplate),
		Files: []fileSpec{
			{Path: fileConfig, Data: mustRenderConfig(minimalSets()), Mode: filePerm},
			{Path: fileTemplate, Data: envMinimal, Mode: filePerm},
		},
		Ignore: []string{fileOutput},
	},
	{
		Name:        "standard",
		Description: describeTemplate(fileConfig, fileTemplate, fileWorkerTpl),
		Files: []fileSpec{
			{Path: fileConfig, Data: mustRenderConfig(standardSets()), Mode: filePerm},
			{Path: fileTemplate, Data: envStandard, Mode: filePerm},
			{Path: fileWorkerTpl, Data: envWorker, Mode: filePerm},
		},
		Ignore: []string{fileOutput, fileWorkerOut},
	},
}

func minimalSets() map[string]setDecl {
	return map[string]setDecl{
		"app": {Template: fileTemplate, Output: fileOutput},
	}
}

func standardSets() map[string]setDecl {
	return map[string]setDecl{
		"app": {
			Template:    fileTemplate,
			Output:      fileOutput,
			AllowEmpty:  []string{"SENTRY_DSN"},
			ForcePrompt: []string{"SESSION_SECRET"},
		},
		"worker": {
			Template:   fileWorkerTpl,
			Output:     fileWorkerOut,
			AllowEmpty: []string{"QUEUE_PREFIX"},
		},
	}
}

func describeTemplate(files ...string) string {
	return strings.Join(files, " + ")
}

func cloneTemplates(src []template) []template {
	if len(src) == 0 {
		return nil
	}
	out := make([]template, len(src))
	for i, t := range src {
		out[i] = t
		out[i].Files = slices.Clone(t.Files)
		out[i].Ignore = slices.Clone(t.Ignore)
	}
	return out
}

const envMinimal = `# Blank entries are prompted for when envconf runs.
APP_ENV=development
APP_PORT=8080
DATABASE_URL=
`

const envStandard = `# Application
APP_ENV=development
APP_PORT=8080
SESSION_SECRET=change-me

# Storage
DATABASE_URL=
REDIS_URL=redis://localhost:6379/0

# Optional integrations
SENTRY_DSN=
`

const envWorker = `QUEUE_URL=
QUEUE_PREFIX=
WORKER_CONCURRENCY=4
`
