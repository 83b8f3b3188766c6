package app

import (
	"path/filepath"
)

// Paths holds all resolved paths under the fixinspect home directory
type Paths struct {
	Home string // .fixinspect directory
	Var  string // .fixinspect/var

	// Key files
	Setting string // .fixinspect/setting.yml
	Archive string // .fixinspect/archive.db
	Metrics string // .fixinspect/var/fixinspect.prom
}

// ResolvePaths returns all paths rooted at home. An empty home means ".fixinspect".
func ResolvePaths(home string) Paths {
	if home == "" {
		home = ".fixinspect"
	}

	p := Paths{
		Home: home,
		Var:  filepath.Join(home, "var"),
	}

	p.Setting = filepath.Join(home, "setting.yml")
	p.Archive = filepath.Join(home, "archive.db")
	p.Metrics = filepath.Join(p.Var, "fixinspect.prom")

	return p
}
