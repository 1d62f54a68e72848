package types

import (
	"bytes"
	"errors"
	"io"

	"github.com/andybalholm/brotli"
)

// ErrStateTruncated is returned when a State is read past the end of
// its data.
var ErrStateTruncated = errors.New("state: truncated")

// stateMagic prefixes every serialised state, followed by a version.
var stateMagic = [4]byte{'G', 'B', 'C', 'S'}

const stateVersion = 2

// State represents the emulator state. This is used to
// save and load states between runs.
type State struct {
	raw          []byte // raw state data (for serialization)
	readPosition int    // current read position
	err          error  // first error encountered while reading
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new, empty state with the header written.
func NewState() *State {
	s := &State{raw: make([]byte, 0, 0x10100)}
	s.WriteData(stateMagic[:])
	s.Write8(stateVersion)
	return s
}

// StateFromBytes creates a new state from the given bytes, validating
// the header.
func StateFromBytes(raw []byte) (*State, error) {
	s := &State{raw: raw}
	var magic [4]byte
	s.ReadData(magic[:])
	version := s.Read8()
	if s.err != nil {
		return nil, s.err
	}
	if magic != stateMagic {
		return nil, errors.New("state: bad magic")
	}
	if version != stateVersion {
		return nil, errors.New("state: unsupported version")
	}
	return s, nil
}

// Decompress reads a brotli compressed state from r.
func Decompress(r io.Reader) (*State, error) {
	raw, err := io.ReadAll(brotli.NewReader(r))
	if err != nil {
		return nil, err
	}
	return StateFromBytes(raw)
}

// Compress writes the state to w, brotli compressed.
func (s *State) Compress(w io.Writer) error {
	bw := brotli.NewWriterLevel(w, brotli.DefaultCompression)
	if _, err := io.Copy(bw, bytes.NewReader(s.raw)); err != nil {
		bw.Close()
		return err
	}
	return bw.Close()
}

// Err returns the first error encountered while reading, if any.
func (s *State) Err() error {
	return s.err
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

// take returns the next n bytes, or nil once the state is exhausted.
func (s *State) take(n int) []byte {
	if s.err != nil {
		return nil
	}
	if s.readPosition+n > len(s.raw) {
		s.err = ErrStateTruncated
		return nil
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 {
	b := s.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (s *State) Read16() uint16 {
	b := s.take(2)
	if b == nil {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

func (s *State) ReadData(p []byte) {
	copy(p, s.take(len(p)))
}

func (s *State) Bytes() []byte {
	return s.raw
}
