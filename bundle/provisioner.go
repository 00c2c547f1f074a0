package bundle

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/termite/core"
)

// ErrBundleNotFound indicates Open was asked for a bundle that does not exist.
var ErrBundleNotFound = errors.New("bundle not found")

// Provisioner creates bundle directories under an apps directory.
type Provisioner struct {
	appsDir string
	logger  *slog.Logger
	mkdir   func(string, os.FileMode) error
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provisioner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProvisioner creates a Provisioner rooted at appsDir.
func NewProvisioner(appsDir string, opts ...Option) *Provisioner {
	p := &Provisioner{
		appsDir: appsDir,
		logger:  slog.Default(),
		mkdir:   os.Mkdir,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AppsDir returns the directory bundles are created in.
func (p *Provisioner) AppsDir() string {
	return p.appsDir
}

func (p *Provisioner) locate(name string) (*Bundle, error) {
	if err := core.ValidateBundleName(name); err != nil {
		return nil, err
	}
	return &Bundle{Name: name, Root: filepath.Join(p.appsDir, name)}, nil
}

// Exists reports whether a bundle root named name exists. It does not check
// whether the bundle is complete.
func (p *Provisioner) Exists(name string) (bool, error) {
	b, err := p.locate(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(b.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	return true, nil
}

// Open returns an existing bundle.
func (p *Provisioner) Open(name string) (*Bundle, error) {
	exists, err := p.Exists(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrBundleNotFound, name)
	}
	return p.locate(name)
}

// Provision creates the root, data and databases directories of a bundle.
//
// An existing root fails with core.ErrAlreadyExists unless overwrite is set,
// in which case the old tree is removed first. If creation fails part way,
// every directory created by this call is removed again and core.ErrIO is
// returned.
func (p *Provisioner) Provision(name string, overwrite bool) (*Bundle, error) {
	b, err := p.locate(name)
	if err != nil {
		return nil, err
	}

	exists, err := p.Exists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		if !overwrite {
			return nil, fmt.Errorf("%w: %s", core.ErrAlreadyExists, b.Root)
		}
		p.logger.Info("removing existing bundle", "path", b.Root)
		if err := os.RemoveAll(b.Root); err != nil {
			return nil, fmt.Errorf("%w: removing %s: %w", core.ErrIO, b.Root, err)
		}
	}

	if err := os.MkdirAll(p.appsDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating apps directory: %w", core.ErrIO, err)
	}

	var created []string
	success := false
	defer func() {
		if success {
			return
		}
		for i := len(created) - 1; i >= 0; i-- {
			if rmErr := os.RemoveAll(created[i]); rmErr != nil {
				p.logger.Warn("failed to roll back bundle directory", "path", created[i], "err", rmErr)
			}
		}
	}()

	for _, dir := range []string{b.Root, b.DataPath(), b.DatabasePath()} {
		if err := p.mkdir(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: creating %s: %w", core.ErrIO, dir, err)
		}
		created = append(created, dir)
	}

	success = true
	p.logger.Debug("bundle provisioned", "name", name, "path", b.Root)
	return b, nil
}
