package initcmd

const (
	DefaultDir      = "."
	DefaultTemplate = "standard"
)

const (
	fileConfig     = "envconf.toml"
	fileTemplate   = ".env.example"
	fileOutput     = ".env"
	fileWorkerTpl  = "worker/.env.example"
	fileWorkerOut  = "worker/.env"
	gitignoreFile  = ".gitignore"
	tempFilePrefix = ".envconf-*"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)
