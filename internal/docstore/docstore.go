package docstore

import (
    "encoding/json"
    "errors"
    "log"
    "os"
    "path/filepath"
    "sync"
)

var ErrNotList = errors.New("document is not a list")

// Store reads and writes named JSON documents under a single data directory.
// Writes go through a temp file and rename so readers never observe a partial
// document, and all operations on the same name are serialized through a
// per-name mutex. Writers in other processes are not coordinated.
type Store struct {
    dir string

    mu    sync.Mutex
    locks map[string]*sync.Mutex
}

func New(dir string) *Store {
    _ = os.MkdirAll(dir, 0o755)
    return &Store{dir: dir, locks: make(map[string]*sync.Mutex)}
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) lockFor(name string) *sync.Mutex {
    s.mu.Lock()
    defer s.mu.Unlock()
    l := s.locks[name]
    if l == nil {
        l = &sync.Mutex{}
        s.locks[name] = l
    }
    return l
}

func (s *Store) path(name string) string {
    // Names are logical, never paths.
    return filepath.Join(s.dir, filepath.Base(name))
}

// Load returns the parsed document stored under name, or def when the file is
// missing or unreadable. Parse and read failures are logged, never surfaced.
func (s *Store) Load(name string, def any) any {
    l := s.lockFor(name)
    l.Lock()
    defer l.Unlock()
    return s.loadLocked(name, def)
}

func (s *Store) loadLocked(name string, def any) any {
    b, err := os.ReadFile(s.path(name))
    if err != nil {
        if !errors.Is(err, os.ErrNotExist) {
            log.Printf("docstore: read %s: %v", name, err)
        }
        return def
    }
    var v any
    if err := json.Unmarshal(b, &v); err != nil {
        log.Printf("docstore: parse %s: %v", name, err)
        return def
    }
    return v
}

// LoadInto decodes the document into v. Missing files return os.ErrNotExist
// so callers that want a default can branch on it.
func (s *Store) LoadInto(name string, v any) error {
    l := s.lockFor(name)
    l.Lock()
    defer l.Unlock()
    b, err := os.ReadFile(s.path(name))
    if err != nil {
        return err
    }
    return json.Unmarshal(b, v)
}

// Save serializes doc as indented UTF-8 JSON under name.
func (s *Store) Save(name string, doc any) error {
    l := s.lockFor(name)
    l.Lock()
    defer l.Unlock()
    return s.saveLocked(name, doc)
}

func (s *Store) saveLocked(name string, doc any) error {
    b, err := json.MarshalIndent(doc, "", "  ")
    if err != nil {
        log.Printf("docstore: marshal %s: %v", name, err)
        return err
    }
    path := s.path(name)
    tmp := path + ".tmp"
    if err := os.WriteFile(tmp, b, 0o644); err != nil {
        log.Printf("docstore: write %s: %v", name, err)
        return err
    }
    if err := os.Rename(tmp, path); err != nil {
        log.Printf("docstore: rename %s: %v", name, err)
        _ = os.Remove(tmp)
        return err
    }
    return nil
}

// Append loads the document as a list, coercing any non-list value to an
// empty list, appends item, and saves. The read-modify-write runs under the
// name's mutex so in-process appenders cannot lose items.
func (s *Store) Append(name string, item any) error {
    l := s.lockFor(name)
    l.Lock()
    defer l.Unlock()

    list, ok := s.loadLocked(name, []any{}).([]any)
    if !ok {
        list = []any{}
    }
    list = append(list, item)
    return s.saveLocked(name, list)
}
