package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"diveboard.app/internal/protocol"
)

// Header is the first line of an export; it can be read without decoding the body.
type Header struct {
	Version  int    `json:"version"`
	Digest   string `json:"digest"`
	Tokens   int    `json:"tokens"`
	ZCounter int    `json:"z_counter"`
}

const Version = 1

// WriteSnapshot writes an inspection export of msg: a JSON header line, then
// the message as JSON, zstd-compressed. It is never loaded back into an engine.
func WriteSnapshot(path, digest string, msg protocol.SnapshotMsg) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 64*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(Header{Version: Version, Digest: digest, Tokens: len(msg.Tokens), ZCounter: msg.ZCounter})
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := json.NewEncoder(bw).Encode(&msg); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func ReadSnapshot(path string) (Header, protocol.SnapshotMsg, error) {
	var h Header
	var msg protocol.SnapshotMsg
	f, err := os.Open(path)
	if err != nil {
		return h, msg, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, msg, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return h, msg, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, msg, fmt.Errorf("decode header: %w", err)
	}
	if h.Version != Version {
		return h, msg, fmt.Errorf("unsupported snapshot version %d", h.Version)
	}
	if err := json.NewDecoder(br).Decode(&msg); err != nil {
		return h, msg, fmt.Errorf("json decode: %w", err)
	}
	return h, msg, nil
}
