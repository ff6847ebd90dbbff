package filestore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"github.com/ValentinKolb/dEnv/lib/telemetry"
	"github.com/ValentinKolb/dEnv/lib/value"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/afero"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var Logger = logger.GetLogger("filestore")

const defaultFileMode os.FileMode = 0o644

// Store is the durable store: a flat file of key=json lines.
// The file is re-read on every access and fully rewritten on every write.
type Store struct {
	fs       afero.Fs
	path     string
	policies Policies

	// mu serializes read-modify-write cycles of this instance. Other processes
	// writing the same file are not coordinated.
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithPolicies replaces the suppression table. A nil table disables suppression.
func WithPolicies(p Policies) Option {
	return func(s *Store) {
		s.policies = p
	}
}

// New creates a store for the file at path on fs. The store uses DefaultPolicies
// unless WithPolicies is given.
func New(fs afero.Fs, path string, opts ...Option) *Store {
	s := &Store{
		fs:       fs,
		path:     path,
		policies: DefaultPolicies(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewOsStore creates a store backed by the operating system's filesystem.
func NewOsStore(path string, opts ...Option) *Store {
	return New(afero.NewOsFs(), path, opts...)
}

// EnsureExists creates an empty backing file (and its parent directories) if
// there is none yet. An existing file is left untouched.
func (s *Store) EnsureExists() error {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	if exists {
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	f, err := s.fs.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, defaultFileMode)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	Logger.Infof("created empty env file %s", s.path)
	return f.Close()
}

// ReadAll parses the whole backing file. A missing file yields an empty snapshot.
func (s *Store) ReadAll() (*Snapshot, error) {
	f, err := s.fs.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewSnapshot(), nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	telemetry.FileReads.Inc()
	snap, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return snap, nil
}

// ReadOne returns the value stored for key and whether the file holds the key.
func (s *Store) ReadOne(key string) (value.Value, bool, error) {
	snap, err := s.ReadAll()
	if err != nil {
		return value.Null(), false, err
	}
	v, ok := snap.Get(key)
	return v, ok, nil
}

// WriteAll replaces the content of the backing file with snap.
func (s *Store) WriteAll(snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeAll(snap)
}

// WriteOne upserts key in the backing file, unless the suppression table
// drops the write. Dropped writes are not an error.
func (s *Store) WriteOne(key string, v value.Value) error {
	if s.policies.Suppresses(key, v) {
		Logger.Debugf("write of %s=%s suppressed by policy", key, v)
		telemetry.WriteSuppressed(telemetry.ReasonPolicy)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.ReadAll()
	if err != nil {
		return err
	}
	snap.Set(key, v)
	return s.writeAll(snap)
}

// writeAll writes snap to a temporary file next to the backing file and
// renames it into place, so readers never observe a truncated file.
func (s *Store) writeAll(snap *Snapshot) error {
	var buf bytes.Buffer
	if err := Format(&buf, snap); err != nil {
		return err
	}

	mode := defaultFileMode
	if info, err := s.fs.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(s.fs, filepath.Dir(s.path), "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", s.path, err)
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		return cleanup(fmt.Errorf("write %s: %w", tmpName, err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync %s: %w", tmpName, err))
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := s.fs.Chmod(tmpName, mode); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("rename %q -> %q: %w", tmpName, s.path, err)
	}

	telemetry.FileWrites.Inc()
	Logger.Debugf("wrote %d entries to %s", snap.Len(), s.path)
	return nil
}

// --------------------------------------------------------------------------
// File format
// --------------------------------------------------------------------------

// Parse reads key=json lines from r. Blank lines and lines starting with '#'
// are ignored. Lines without '=' or with a value that is not valid JSON are
// dropped. Only errors of r itself are returned.
func Parse(r io.Reader) (*Snapshot, error) {
	snap := NewSnapshot()
	reader := bufio.NewReader(r)
	lineNo := 0

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if line != "" {
			lineNo++
			parseLine(snap, line, lineNo)
		}
		if err != nil {
			return snap, nil
		}
	}
}

func parseLine(snap *Snapshot, line string, lineNo int) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}

	key, raw, found := strings.Cut(line, "=")
	if !found {
		Logger.Debugf("line %d: missing '=', skipped", lineNo)
		return
	}

	v, err := value.DecodeString(raw)
	if err != nil {
		Logger.Debugf("line %d: invalid value for %q, skipped: %v", lineNo, strings.TrimSpace(key), err)
		return
	}
	snap.Set(strings.TrimSpace(key), v)
}

// Format writes snap as key=json lines in snapshot order. Entries with an
// empty key are skipped.
func Format(w io.Writer, snap *Snapshot) error {
	var err error
	snap.Range(func(key string, v value.Value) bool {
		if key == "" {
			return true
		}
		var data []byte
		if data, err = v.Encode(); err != nil {
			err = fmt.Errorf("encode %s: %w", key, err)
			return false
		}
		_, err = fmt.Fprintf(w, "%s=%s\n", key, data)
		return err == nil
	})
	return err
}
