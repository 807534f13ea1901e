package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Mesh format errors.
var (
	ErrInvalidMeshMagic       = errors.New("invalid mesh magic: expected 'RTIN'")
	ErrUnsupportedMeshVersion = errors.New("unsupported mesh version")
	ErrTruncatedMeshData      = errors.New("truncated mesh data")
	ErrMeshIndexRange         = errors.New("mesh index out of range")
)

const meshMagic = "RTIN"

// MeshVersion is the version written by Encode.
var MeshVersion = Version{Major: 1, Minor: 0}

// Version represents a file format version.
type Version struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Mesh flag bits.
const (
	MeshFlagLines uint8 = 1 << 0 // indices form a line list
)

// meshHeader is the fixed part of the file after the magic.
type meshHeader struct {
	Minor       uint8
	Major       uint8
	Flags       uint8
	_           uint8
	Threshold   float32
	VertexCount uint32
	IndexCount  uint32
}

// Mesh is a little-endian binary terrain mesh.
//
// Layout: "RTIN", version [minor, major], flags, pad, threshold float32,
// vertex count uint32, index count uint32, then vertex positions as three
// float32 each and the uint32 indices.
type Mesh struct {
	Version   Version
	Lines     bool
	Threshold float32
	Positions [][3]float32
	Indices   []uint32
}

// Encode writes the mesh using MeshVersion.
func (m *Mesh) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)

	var flags uint8
	if m.Lines {
		flags |= MeshFlagLines
	}
	hdr := meshHeader{
		Minor:       MeshVersion.Minor,
		Major:       MeshVersion.Major,
		Flags:       flags,
		Threshold:   m.Threshold,
		VertexCount: uint32(len(m.Positions)),
		IndexCount:  uint32(len(m.Indices)),
	}

	if _, err := bw.WriteString(meshMagic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, m.Positions); err != nil {
		return fmt.Errorf("writing positions: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, m.Indices); err != nil {
		return fmt.Errorf("writing indices: %w", err)
	}
	return bw.Flush()
}

// ParseMesh parses a mesh from raw bytes.
func ParseMesh(data []byte) (*Mesh, error) {
	if len(data) < 4 {
		return nil, ErrTruncatedMeshData
	}
	if string(data[0:4]) != meshMagic {
		return nil, ErrInvalidMeshMagic
	}

	r := bytes.NewReader(data[4:])

	var hdr meshHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: reading header", ErrTruncatedMeshData)
	}

	version := Version{Major: hdr.Major, Minor: hdr.Minor}
	if version.Major != MeshVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMeshVersion, version)
	}

	// Reject counts the remaining bytes cannot hold before allocating.
	need := uint64(hdr.VertexCount)*12 + uint64(hdr.IndexCount)*4
	if need > uint64(r.Len()) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedMeshData, need, r.Len())
	}

	m := &Mesh{
		Version:   version,
		Lines:     hdr.Flags&MeshFlagLines != 0,
		Threshold: hdr.Threshold,
		Positions: make([][3]float32, hdr.VertexCount),
		Indices:   make([]uint32, hdr.IndexCount),
	}

	if err := binary.Read(r, binary.LittleEndian, m.Positions); err != nil {
		return nil, fmt.Errorf("%w: reading positions", ErrTruncatedMeshData)
	}
	if err := binary.Read(r, binary.LittleEndian, m.Indices); err != nil {
		return nil, fmt.Errorf("%w: reading indices", ErrTruncatedMeshData)
	}

	for i, idx := range m.Indices {
		if idx >= hdr.VertexCount {
			return nil, fmt.Errorf("%w: index %d is %d, %d vertices", ErrMeshIndexRange, i, idx, hdr.VertexCount)
		}
	}

	return m, nil
}

// ParseMeshFile parses a mesh file from disk.
func ParseMeshFile(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mesh file: %w", err)
	}
	return ParseMesh(data)
}

// PrimitiveCount returns the number of triangles or lines in the mesh.
func (m *Mesh) PrimitiveCount() int {
	if m.Lines {
		return len(m.Indices) / 2
	}
	return len(m.Indices) / 3
}
