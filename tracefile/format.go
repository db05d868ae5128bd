// Package tracefile reads and writes reference streams.
//
// Trace file layout (little endian):
//
//	[0-3]   Magic number (0x50475452)
//	[4]     Format version
//	[5]     Compression type (0=none, 1=LZ4, 2=Snappy)
//	[6-7]   Reserved
//	[8-11]  Reference count
//	[12-15] Max page of the page domain
//	[16-19] Uncompressed payload size
//	[20-23] Payload checksum (CRC32 IEEE, uncompressed)
//	[24+]   Payload: one uvarint per reference
package tracefile

import (
	"encoding/binary"
	"hash/crc32"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/sibexico/pagesim/paging"
)

const (
	Magic      = 0x50475452
	Version    = 1
	HeaderSize = 24
)

// Header describes an encoded trace
type Header struct {
	Compression Compression
	Count       uint32
	MaxPage     paging.PageID
	PayloadSize uint32
	Checksum    uint32
}

// Encode serializes stream with the requested compression
func Encode(stream paging.ReferenceStream, compression Compression) ([]byte, error) {
	payload := make([]byte, 0, stream.Len()*2)
	for i := 0; i < stream.Len(); i++ {
		payload = binary.AppendUvarint(payload, uint64(stream.At(i)))
	}

	compressed, used, err := compress(payload, compression)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, HeaderSize, HeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	buf[4] = Version
	buf[5] = uint8(used)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(stream.Len()))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(stream.MaxPage()))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[20:24], crc32.ChecksumIEEE(payload))

	return append(buf, compressed...), nil
}

// DecodeHeader parses and checks the fixed size header
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errors.Newf("data too short for trace header: %d bytes", len(data))
	}

	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != Magic {
		return Header{}, errors.Newf("invalid magic number: got %08x, expected %08x", magic, Magic)
	}
	if data[4] != Version {
		return Header{}, errors.Newf("unsupported trace version %d", data[4])
	}

	return Header{
		Compression: Compression(data[5]),
		Count:       binary.LittleEndian.Uint32(data[8:12]),
		MaxPage:     paging.PageID(binary.LittleEndian.Uint32(data[12:16])),
		PayloadSize: binary.LittleEndian.Uint32(data[16:20]),
		Checksum:    binary.LittleEndian.Uint32(data[20:24]),
	}, nil
}

// Decode parses an encoded trace back into a validated stream
func Decode(data []byte) (paging.ReferenceStream, error) {
	header, err := DecodeHeader(data)
	if err != nil {
		return paging.ReferenceStream{}, err
	}

	// Every reference takes one to MaxVarintLen32 bytes
	if uint64(header.PayloadSize) > uint64(header.Count)*binary.MaxVarintLen32 || header.PayloadSize < header.Count {
		return paging.ReferenceStream{}, errors.Newf("payload size %d does not fit %d references", header.PayloadSize, header.Count)
	}

	payload, err := decompress(data[HeaderSize:], header.Compression, int(header.PayloadSize))
	if err != nil {
		return paging.ReferenceStream{}, err
	}

	if checksum := crc32.ChecksumIEEE(payload); checksum != header.Checksum {
		return paging.ReferenceStream{}, errors.Newf("checksum mismatch: got %08x, expected %08x", checksum, header.Checksum)
	}

	pages := make([]paging.PageID, 0, min(int(header.Count), len(payload)))
	for len(payload) > 0 {
		v, n := binary.Uvarint(payload)
		if n <= 0 {
			return paging.ReferenceStream{}, errors.Newf("malformed reference at index %d", len(pages))
		}
		pages = append(pages, paging.PageID(v))
		payload = payload[n:]
	}
	if uint32(len(pages)) != header.Count {
		return paging.ReferenceStream{}, errors.Newf("reference count mismatch: got %d, expected %d", len(pages), header.Count)
	}

	stream, err := paging.NewReferenceStream(pages, header.MaxPage)
	if err != nil {
		return paging.ReferenceStream{}, errors.Wrap(err, "invalid trace contents")
	}
	return stream, nil
}

// Write stores stream in a trace file at path
func Write(path string, stream paging.ReferenceStream, compression Compression) error {
	data, err := Encode(stream, compression)
	if err != nil {
		return errors.Wrapf(err, "cannot encode trace %s", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "cannot write trace file %s", path)
	}
	return nil
}

// Read loads the trace file at path
func Read(path string) (paging.ReferenceStream, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return paging.ReferenceStream{}, errors.Wrapf(err, "could not stat file: %s, does it exist?", path)
	}
	if stat.IsDir() {
		return paging.ReferenceStream{}, errors.New("given path to trace file is a directory")
	}
	if stat.Size() == 0 {
		return paging.ReferenceStream{}, errors.New("given trace file is empty")
	}

	data, release, err := mapFile(path, int(stat.Size()))
	if err != nil {
		return paging.ReferenceStream{}, errors.Wrapf(err, "could not open trace file: %s", path)
	}
	defer release()

	stream, err := Decode(data)
	if err != nil {
		return paging.ReferenceStream{}, errors.Wrapf(err, "could not decode trace file: %s", path)
	}
	return stream, nil
}
