// Package snapshot encodes global memory into a compressed, digest-checked
// blob: a JSON header line followed by the JSON memory tree, zstd framed.
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/zeusync/colony/internal/core/memory"
)

const Version = 1

var (
	ErrDigestMismatch = errors.New("snapshot: digest mismatch")
	ErrVersion        = errors.New("snapshot: unsupported version")
	ErrCorrupt        = errors.New("snapshot: corrupt data")
)

type Header struct {
	Version int       `json:"version"`
	Tick    int64     `json:"tick"`
	Digest  uint64    `json:"digest"`
	Size    int       `json:"size"`
	TakenAt time.Time `json:"taken_at"`
}

type Snapshot struct {
	Header Header
	Memory memory.Object
}

// Encode serialises mem as of tick.
func Encode(mem memory.Object, tick int64) ([]byte, Header, error) {
	payload, err := mem.MarshalJSON()
	if err != nil {
		return nil, Header{}, err
	}
	h := Header{
		Version: Version,
		Tick:    tick,
		Digest:  xxhash.Sum64(payload),
		Size:    len(payload),
		TakenAt: time.Now().UTC(),
	}

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, Header{}, err
	}
	hb, _ := json.Marshal(h)
	if _, err := enc.Write(append(hb, '\n')); err != nil {
		_ = enc.Close()
		return nil, Header{}, err
	}
	if _, err := enc.Write(payload); err != nil {
		_ = enc.Close()
		return nil, Header{}, err
	}
	if err := enc.Close(); err != nil {
		return nil, Header{}, err
	}
	return buf.Bytes(), h, nil
}

// Decode reverses Encode and verifies the payload digest.
func Decode(data []byte) (Snapshot, error) {
	var snap Snapshot
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return snap, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if err := json.Unmarshal(line, &snap.Header); err != nil {
		return snap, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if snap.Header.Version != Version {
		return snap, fmt.Errorf("%w: %d", ErrVersion, snap.Header.Version)
	}

	payload, err := io.ReadAll(br)
	if err != nil {
		return snap, fmt.Errorf("%w: payload: %w", ErrCorrupt, err)
	}
	if got := xxhash.Sum64(payload); got != snap.Header.Digest || len(payload) != snap.Header.Size {
		return snap, fmt.Errorf("%w: want %016x, got %016x", ErrDigestMismatch, snap.Header.Digest, got)
	}

	snap.Memory, err = memory.FromJSON(payload)
	if err != nil {
		return snap, err
	}
	return snap, nil
}
