package io

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/tricubic/math/interpolate"
)

const (
	// Endianness used by default when writing cache files. Cache files of
	// any endianness can be read.
	DefaultEndiannessFlag int32 = 0
)

/*
The binary format used for derivative cache files is as follows:
    |-- 1 --||-- 2 --||-- 3 --||-- ... 4 ... --|

    1 - (int32) Flag indicating the endianness of the file. 0 indicates a
        little endian byte ordering and -1 indicates a big endian byte order.
    2 - (int32) Size of a CacheHeader struct. Should be checked for
        consistency.
    3 - (CacheHeader) Dimensions of the cached grid.
    4 - ([]float64) Contiguous block of second derivatives. y2s[i][j][k] is
        stored at index (i*M + j)*L + k.
*/
type CacheHeader struct {
	N, M, L int64
}

// endianness converts an endianness flag to a byte order.
func endianness(flag int32) (binary.ByteOrder, error) {
	switch flag {
	case 0:
		return binary.LittleEndian, nil
	case -1:
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("Unrecognized endianness flag, %d.", flag)
}

// WriteCache writes the n x m x l second derivative cache of a TriCubic to
// a file.
func WriteCache(file string, y2s [][][]float64) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	wr := bufio.NewWriter(f)
	if err := writeCache(wr, DefaultEndiannessFlag, y2s); err != nil {
		return err
	}
	if err := wr.Flush(); err != nil {
		return err
	}

	log.Infof("Wrote derivative cache to %s.", file)
	return f.Close()
}

func writeCache(wr io.Writer, flag int32, y2s [][][]float64) error {
	order, err := endianness(flag)
	if err != nil {
		return err
	}

	hd := CacheHeader{N: int64(len(y2s))}
	if hd.N > 0 {
		hd.M = int64(len(y2s[0]))
		if hd.M > 0 {
			hd.L = int64(len(y2s[0][0]))
		}
	}

	flat := make([]float64, 0, hd.N*hd.M*hd.L)
	for i := range y2s {
		if int64(len(y2s[i])) != hd.M {
			return fmt.Errorf(
				"%w: cache slice %d has %d rows, but slice 0 has %d",
				interpolate.ErrLength, i, len(y2s[i]), hd.M,
			)
		}
		for j := range y2s[i] {
			if int64(len(y2s[i][j])) != hd.L {
				return fmt.Errorf(
					"%w: cache row [%d][%d] has %d points, but row [0][0] has %d",
					interpolate.ErrLength, i, j, len(y2s[i][j]), hd.L,
				)
			}
			flat = append(flat, y2s[i][j]...)
		}
	}

	if err := binary.Write(wr, order, flag); err != nil {
		return err
	}
	if err := binary.Write(wr, order, int32(binary.Size(hd))); err != nil {
		return err
	}
	if err := binary.Write(wr, order, &hd); err != nil {
		return err
	}
	return binary.Write(wr, order, flat)
}

// ReadCache reads a second derivative cache from a file. It returns an
// error if the cache doesn't have the dimensions n x m x l.
func ReadCache(file string, n, m, l int) ([][][]float64, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	y2s, err := readCache(bufio.NewReader(f), n, m, l)
	if err != nil {
		return nil, fmt.Errorf("Cache file %s: %w", file, err)
	}

	log.Infof("Read %d x %d x %d derivative cache from %s.", n, m, l, file)
	return y2s, nil
}

func readCache(rd io.Reader, n, m, l int) ([][][]float64, error) {
	var flag, headerSize int32
	// order doesn't matter for this read, since flags are symmetric.
	if err := binary.Read(rd, binary.LittleEndian, &flag); err != nil {
		return nil, err
	}
	order, err := endianness(flag)
	if err != nil {
		return nil, err
	}

	if err := binary.Read(rd, order, &headerSize); err != nil {
		return nil, err
	} else if int(headerSize) != binary.Size(CacheHeader{}) {
		return nil, fmt.Errorf(
			"Expected CacheHeader size of %d, found %d.",
			binary.Size(CacheHeader{}), headerSize,
		)
	}

	hd := CacheHeader{}
	if err := binary.Read(rd, order, &hd); err != nil {
		return nil, err
	}
	if hd.N != int64(n) || hd.M != int64(m) || hd.L != int64(l) {
		return nil, fmt.Errorf(
			"%w: cache is %d x %d x %d, but the grid is %d x %d x %d",
			interpolate.ErrLength, hd.N, hd.M, hd.L, n, m, l,
		)
	}

	flat := make([]float64, n*m*l)
	if err := binary.Read(rd, order, flat); err != nil {
		return nil, err
	}

	y2s := make([][][]float64, n)
	for i := range y2s {
		y2s[i] = make([][]float64, m)
		for j := range y2s[i] {
			start := (i*m + j) * l
			y2s[i][j] = flat[start : start+l : start+l]
		}
	}
	return y2s, nil
}
