package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"elide/internal/diag"
	"elide/internal/source"
)

// Increment when the payload format changes; stale entries are ignored.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores lint results keyed by file content hash, so unchanged
// files skip the pipeline entirely. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Cached diagnostics carry byte offsets only; the file ID is rebound to the
// current FileSet on load.

type cachedSpan struct {
	Start uint32
	End   uint32
}

type cachedNote struct {
	Span cachedSpan
	Msg  string
}

type cachedEdit struct {
	Span    cachedSpan
	NewText string
	OldText string
}

type cachedFix struct {
	ID            string
	Title         string
	Kind          uint8
	Applicability uint8
	IsPreferred   bool
	RequiresAll   bool
	Edits         []cachedEdit
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  cachedSpan
	Notes    []cachedNote
	Fixes    []cachedFix
}

// DiskPayload is the cached result for one content hash.
type DiskPayload struct {
	Schema      uint16
	Diagnostics []cachedDiagnostic
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location ($XDG_CACHE_HOME or ~/.cache).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "results", hexKey+".mp")
}

// Put serializes and writes a payload, atomically via temp file + rename.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload. Returns false when the key is absent.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func toCachedSpan(sp source.Span) cachedSpan {
	return cachedSpan{Start: sp.Start, End: sp.End}
}

func (s cachedSpan) bind(fileID source.FileID) source.Span {
	return source.Span{File: fileID, Start: s.Start, End: s.End}
}

// bagToPayload flattens a bag for caching. Timings are run-specific and
// dropped.
func bagToPayload(bag *diag.Bag) *DiskPayload {
	payload := &DiskPayload{Schema: diskCacheSchemaVersion}
	for _, d := range bag.Items() {
		if d.Code == diag.ObsTimings {
			continue
		}
		cached := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Primary:  toCachedSpan(d.Primary),
		}
		for _, note := range d.Notes {
			cached.Notes = append(cached.Notes, cachedNote{Span: toCachedSpan(note.Span), Msg: note.Msg})
		}
		for _, f := range d.Fixes {
			if f.Thunk != nil {
				// lazy fixes cannot be rebuilt from cache
				continue
			}
			cf := cachedFix{
				ID:            f.ID,
				Title:         f.Title,
				Kind:          uint8(f.Kind),
				Applicability: uint8(f.Applicability),
				IsPreferred:   f.IsPreferred,
				RequiresAll:   f.RequiresAll,
			}
			for _, edit := range f.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{
					Span:    toCachedSpan(edit.Span),
					NewText: edit.NewText,
					OldText: edit.OldText,
				})
			}
			cached.Fixes = append(cached.Fixes, cf)
		}
		payload.Diagnostics = append(payload.Diagnostics, cached)
	}
	return payload
}

// bagFromPayload rebuilds a bag, rebinding spans to the current file ID.
// Returns false for unknown schema versions.
func bagFromPayload(payload *DiskPayload, fileID source.FileID, maxDiagnostics int) (*diag.Bag, bool) {
	if payload == nil || payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}
	bag := diag.NewBag(maxDiagnostics)
	for _, cached := range payload.Diagnostics {
		d := diag.New(
			diag.Severity(cached.Severity),
			diag.Code(cached.Code),
			cached.Primary.bind(fileID),
			cached.Message,
		)
		for _, note := range cached.Notes {
			d = d.WithNote(note.Span.bind(fileID), note.Msg)
		}
		for _, cf := range cached.Fixes {
			f := diag.Fix{
				ID:            cf.ID,
				Title:         cf.Title,
				Kind:          diag.FixKind(cf.Kind),
				Applicability: diag.FixApplicability(cf.Applicability),
				IsPreferred:   cf.IsPreferred,
				RequiresAll:   cf.RequiresAll,
			}
			for _, edit := range cf.Edits {
				f.Edits = append(f.Edits, diag.TextEdit{
					Span:    edit.Span.bind(fileID),
					NewText: edit.NewText,
					OldText: edit.OldText,
				})
			}
			d = d.WithFixSuggestion(f)
		}
		bag.Add(d)
	}
	return bag, true
}
