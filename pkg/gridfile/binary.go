package gridfile

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/Faultbox/gridpath/internal/pathfinding"
)

// Binary layout:
//
//	"GRID"            magic
//	minor, major      version bytes (1.0)
//	uint32 rows       little-endian
//	uint32 cols       little-endian
//	bitset            row-major, 1 = passable, least significant bit first
const (
	binaryMagic      = "GRID"
	binaryMajor      = 1
	binaryMinor      = 0
	binaryHeaderSize = 14
)

// Version represents the binary format version.
type Version struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseBinary parses a binary grid from raw bytes.
func ParseBinary(data []byte) (*Map, error) {
	if len(data) < binaryHeaderSize {
		return nil, ErrTruncatedData
	}

	if string(data[0:4]) != binaryMagic {
		return nil, ErrInvalidMagic
	}

	// Version is stored as [minor, major]
	version := Version{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != binaryMajor {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var rows, cols uint32
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return nil, fmt.Errorf("%w: reading rows", ErrTruncatedData)
	}
	if err := binary.Read(r, binary.LittleEndian, &cols); err != nil {
		return nil, fmt.Errorf("%w: reading cols", ErrTruncatedData)
	}
	if err := checkDimensions(int(rows), int(cols)); err != nil {
		return nil, err
	}

	cellCount := int(rows) * int(cols)
	bits := data[binaryHeaderSize:]
	if len(bits) < bitsetLen(cellCount) {
		return nil, fmt.Errorf("%w: want %d bitset bytes, got %d", ErrTruncatedData, bitsetLen(cellCount), len(bits))
	}

	cells := make([][]bool, rows)
	for row := range cells {
		cells[row] = make([]bool, cols)
		for col := range cells[row] {
			i := row*int(cols) + col
			cells[row][col] = bits[i/8]&(1<<(i%8)) != 0
		}
	}

	grid, err := pathfinding.NewGrid(cells)
	if err != nil {
		return nil, err
	}
	return &Map{Grid: grid}, nil
}

// EncodeBinary serializes grid in the binary format.
func EncodeBinary(grid *pathfinding.Grid) ([]byte, error) {
	if grid == nil {
		return nil, pathfinding.ErrNilGrid
	}
	rows, cols := grid.Rows(), grid.Cols()
	if err := checkDimensions(rows, cols); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	buf.Grow(binaryHeaderSize + bitsetLen(rows*cols))
	buf.WriteString(binaryMagic)
	buf.WriteByte(binaryMinor)
	buf.WriteByte(binaryMajor)
	// bytes.Buffer writes never fail
	_ = binary.Write(buf, binary.LittleEndian, uint32(rows))
	_ = binary.Write(buf, binary.LittleEndian, uint32(cols))

	bits := make([]byte, bitsetLen(rows*cols))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if grid.Passable(pathfinding.Coordinate{Row: r, Col: c}) {
				i := r*cols + c
				bits[i/8] |= 1 << (i % 8)
			}
		}
	}
	buf.Write(bits)

	return buf.Bytes(), nil
}

func bitsetLen(cells int) int {
	return (cells + 7) / 8
}
