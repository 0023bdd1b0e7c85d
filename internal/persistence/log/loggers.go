package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"diveboard.app/internal/sim/board"
)

// JSONLZstdWriter appends JSON lines to zstd-compressed files named
// <prefix>-<session>-<hour>.jsonl.zst under dir. Each writer has its own
// session stamp, so writers sharing a dir never share a file; a new file is
// started when the UTC hour changes.
type JSONLZstdWriter struct {
	dir     string
	prefix  string
	session string
	now     func() time.Time

	mu   sync.Mutex
	hour string
	f    *os.File
	zw   *zstd.Encoder
	buf  *bufio.Writer
	enc  *json.Encoder
}

const (
	sessionLayout = "20060102T150405.000000000"
	hourLayout    = "2006010215"
)

func NewJSONLZstdWriter(dir, prefix string) *JSONLZstdWriter {
	return newJSONLZstdWriter(dir, prefix, time.Now)
}

func newJSONLZstdWriter(dir, prefix string, now func() time.Time) *JSONLZstdWriter {
	return &JSONLZstdWriter{
		dir:     dir,
		prefix:  prefix,
		session: now().UTC().Format(sessionLayout),
		now:     now,
	}
}

// Session is the stamp shared by every file this writer creates.
func (w *JSONLZstdWriter) Session() string { return w.session }

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if hour := w.now().UTC().Format(hourLayout); hour != w.hour || w.enc == nil {
		if err := w.openLocked(hour); err != nil {
			return err
		}
	}
	if err := w.enc.Encode(v); err != nil {
		return err
	}
	return w.buf.Flush()
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *JSONLZstdWriter) openLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%s-%s-%s.jsonl.zst", w.prefix, w.session, hour)
	f, err := os.OpenFile(filepath.Join(w.dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f, w.zw, w.hour = f, zw, hour
	w.buf = bufio.NewWriter(zw)
	w.enc = json.NewEncoder(w.buf)
	return nil
}

// closeLocked finishes the current file and returns the first failure.
func (w *JSONLZstdWriter) closeLocked() error {
	if w.f == nil {
		return nil
	}
	var errs []error
	errs = append(errs, w.buf.Flush(), w.zw.Close(), w.f.Close())
	w.f, w.zw, w.buf, w.enc = nil, nil, nil, nil
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// GestureLogger journals one session's gestures under <sessionDir>/gestures.
type GestureLogger struct{ w *JSONLZstdWriter }

func NewGestureLogger(sessionDir string) *GestureLogger {
	return &GestureLogger{w: NewJSONLZstdWriter(filepath.Join(sessionDir, "gestures"), "gestures")}
}

func (l *GestureLogger) Session() string                            { return l.w.Session() }
func (l *GestureLogger) WriteGesture(v board.GestureLogEntry) error { return l.w.Write(v) }
func (l *GestureLogger) Close() error                               { return l.w.Close() }

// ListGestureFiles returns the journal files under dir oldest session first,
// and within a session in hour order.
func ListGestureFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "gestures-") && strings.HasSuffix(name, ".jsonl.zst") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out, nil
}

// ReadGestureFile decodes every entry of one journal file.
func ReadGestureFile(path string) ([]board.GestureLogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var out []board.GestureLogEntry
	for sc.Scan() {
		var entry board.GestureLogEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		out = append(out, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
