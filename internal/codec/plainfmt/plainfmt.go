// Package plainfmt is the one concrete segment format ironsearch ships:
// a gob-encoded field/posting/stored-field blob, checksummed with
// xxhash so a truncated or corrupted artefact is detected at load time
// rather than silently misread.
package plainfmt

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/ervinbosenbacher/ironsearch/pkg/codec"
	"github.com/ervinbosenbacher/ironsearch/pkg/directory"
	"github.com/ervinbosenbacher/ironsearch/pkg/errors"
)

const formatName = "plain10"

// Codec is the gob+xxhash segment format.
type Codec struct{}

func init() {
	codec.Register(Codec{})
}

// Name reports the format's version tag.
func (Codec) Name() string { return formatName }

func dataFileName(segName string) string { return segName + ".data" }

// WriteSegment gob-encodes data and writes it to "<name>.data", prefixed
// by an 8-byte xxhash checksum of the payload.
func (Codec) WriteSegment(dir directory.Directory, name string, data *codec.SegmentData) ([]string, error) {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(data); err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to encode segment payload").
			WithFileName(dataFileName(name))
	}

	sum := xxhash.Sum64(payload.Bytes())

	fileName := dataFileName(name)
	out, err := dir.CreateOutput(fileName)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	var header [8]byte
	binary.BigEndian.PutUint64(header[:], sum)
	if _, err := out.Write(header[:]); err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to write segment checksum").
			WithFileName(fileName)
	}
	if _, err := out.Write(payload.Bytes()); err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to write segment payload").
			WithFileName(fileName)
	}
	return []string{fileName}, nil
}

// ReadSegment reads and validates "<name>.data" and gob-decodes its
// payload.
func (Codec) ReadSegment(dir directory.Directory, name string, files []string) (*codec.SegmentData, error) {
	fileName := dataFileName(name)

	in, err := dir.OpenInput(fileName)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	raw, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeHeaderReadFailure, "failed to read segment file").
			WithFileName(fileName)
	}
	if len(raw) < 8 {
		return nil, errors.NewStorageError(nil, errors.ErrorCodeSegmentCorrupted, "segment file too short for checksum header").
			WithFileName(fileName)
	}

	wantSum := binary.BigEndian.Uint64(raw[:8])
	payload := raw[8:]
	if gotSum := xxhash.Sum64(payload); gotSum != wantSum {
		return nil, errors.NewStorageError(nil, errors.ErrorCodeSegmentCorrupted, "segment checksum mismatch").
			WithFileName(fileName).
			WithDetail("want_checksum", wantSum).
			WithDetail("got_checksum", gotSum)
	}

	var data codec.SegmentData
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&data); err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodePayloadReadFailure, "failed to decode segment payload").
			WithFileName(fileName)
	}
	return &data, nil
}
