package session

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/disgoorg/json"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/movement"
	"github.com/oomph-ac/strafe/oerror"
	"github.com/oomph-ac/strafe/settings"
	"github.com/zeebo/xxh3"
)

const CurrentRecordingVer = "1"

var checksumPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 25)
		return &b
	},
}

// TickRecord is one line of a recording: the outcome of a single character's tick.
type TickRecord struct {
	Tick      uint64     `json:"tick"`
	Character string     `json:"character"`
	Position  [3]float32 `json:"position"`
	Velocity  [3]float32 `json:"velocity"`
	Mode      string     `json:"mode"`
	Outcome   string     `json:"outcome"`
	OnGround  bool       `json:"on_ground"`
	Respawned bool       `json:"respawned,omitempty"`
	Checksum  uint64     `json:"checksum"`
}

// MetaEntry is a key and value pair stored in the header of a recording.
type MetaEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Recording is a decoded recording file.
type Recording struct {
	Version  string
	Settings settings.Settings
	Metadata []MetaEntry
	Ticks    []TickRecord
}

// Meta returns the value of the metadata entry with the key passed.
func (r *Recording) Meta(key string) (string, bool) {
	for _, e := range r.Metadata {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Checksum returns the running checksum of every tick in the recording, as a session would have
// computed it while recording.
func (r *Recording) Checksum() uint64 {
	h := xxh3.New()
	for _, t := range r.Ticks {
		foldChecksum(h, t.Checksum)
	}
	return h.Sum64()
}

// Recorder writes tick records to a recording. The header holds the version, the settings the
// session ran with and the metadata in insertion order. Every following line is a TickRecord.
type Recorder struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewRecorder writes the header of a recording to w and returns a Recorder appending ticks to it.
func NewRecorder(w io.Writer, s settings.Settings, meta *orderedmap.OrderedMap[string, string]) (*Recorder, error) {
	r := &Recorder{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		r.closer = c
	}

	if _, err := r.w.WriteString(CurrentRecordingVer + "\n"); err != nil {
		return nil, fmt.Errorf("write recording version: %w", err)
	}
	if err := r.writeLine(s); err != nil {
		return nil, fmt.Errorf("write recording settings: %w", err)
	}
	entries := []MetaEntry{}
	if meta != nil {
		for el := meta.Front(); el != nil; el = el.Next() {
			entries = append(entries, MetaEntry{Key: el.Key, Value: el.Value})
		}
	}
	if err := r.writeLine(entries); err != nil {
		return nil, fmt.Errorf("write recording metadata: %w", err)
	}
	return r, nil
}

// CreateRecording creates the file at path, replacing an existing one, and writes a recording
// header to it.
func CreateRecording(path string, s settings.Settings, meta *orderedmap.OrderedMap[string, string]) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	r, err := NewRecorder(f, s, meta)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// Write appends a tick record.
func (r *Recorder) Write(t TickRecord) error {
	return r.writeLine(t)
}

// writeLine encodes v as JSON on a line of its own.
func (r *Recorder) writeLine(v any) error {
	enc, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := r.w.Write(enc); err != nil {
		return err
	}
	return r.w.WriteByte('\n')
}

// Close flushes the recording and closes the underlying writer if it is an io.Closer.
func (r *Recorder) Close() error {
	if err := r.w.Flush(); err != nil {
		return fmt.Errorf("flush recording: %w", err)
	}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// ReadRecording decodes a recording. It returns an error if the version of the recording is not
// supported or any line could not be parsed.
func ReadRecording(r io.Reader) (*Recording, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	next := func() ([]byte, bool) {
		for sc.Scan() {
			line++
			if b := sc.Bytes(); len(b) > 0 {
				return b, true
			}
		}
		return nil, false
	}

	rec := &Recording{}
	b, ok := next()
	if !ok {
		return nil, oerror.New("recording is empty")
	}
	rec.Version = string(b)
	if rec.Version != CurrentRecordingVer {
		return nil, oerror.New("unsupported recording version: %s", rec.Version)
	}

	b, ok = next()
	if !ok {
		return nil, oerror.New("recording is missing its settings")
	}
	rec.Settings = settings.DefaultSettings()
	if err := json.Unmarshal(b, &rec.Settings); err != nil {
		return nil, fmt.Errorf("decode recording settings: %w", err)
	}

	b, ok = next()
	if !ok {
		return nil, oerror.New("recording is missing its metadata")
	}
	if err := json.Unmarshal(b, &rec.Metadata); err != nil {
		return nil, fmt.Errorf("decode recording metadata: %w", err)
	}

	for {
		b, ok = next()
		if !ok {
			break
		}
		var t TickRecord
		if err := json.Unmarshal(b, &t); err != nil {
			return nil, fmt.Errorf("decode tick on line %d: %w", line, err)
		}
		rec.Ticks = append(rec.Ticks, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	return rec, nil
}

// OpenRecording reads the recording file at path.
func OpenRecording(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()
	return ReadRecording(f)
}

// NewTickRecord returns the record of res for a character, checksummed.
func NewTickRecord(tick uint64, character string, res movement.Result, respawned bool) TickRecord {
	return TickRecord{
		Tick:      tick,
		Character: character,
		Position:  res.Position,
		Velocity:  res.Velocity,
		Mode:      res.Mode.String(),
		Outcome:   res.Outcome.String(),
		OnGround:  res.OnGround,
		Respawned: respawned,
		Checksum:  ResultChecksum(res),
	}
}

// ResultChecksum hashes the exact bits of the position, velocity and mode of res. Two runs that
// produce the same checksums took bit identical paths.
func ResultChecksum(res movement.Result) uint64 {
	bp := checksumPool.Get().(*[]byte)
	defer checksumPool.Put(bp)

	buf := appendVec((*bp)[:0], res.Position)
	buf = appendVec(buf, res.Velocity)
	buf = append(buf, byte(res.Mode))
	*bp = buf
	return xxh3.Hash(buf)
}

func appendVec(buf []byte, v mgl32.Vec3) []byte {
	for _, f := range v {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}

func foldChecksum(h *xxh3.Hasher, sum uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], sum)
	_, _ = h.Write(b[:])
}
