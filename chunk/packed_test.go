package chunk

import (
	"math"
	"strconv"
	"testing"
)

// packLongs is the inverse of unpackLongs, used only by tests to build a
// known-good packed long array from a known value array.
func packLongs(values []uint16, bitsPerValue int) []int64 {
	shortsPerLong := 64 / bitsPerValue
	longCount := ceilDiv(len(values), shortsPerLong)
	data := make([]int64, longCount)
	for i := 0; i < shortsPerLong; i++ {
		for j := 0; j < longCount; j++ {
			k := i + j*shortsPerLong
			if k >= len(values) {
				break
			}
			data[j] |= int64(values[k]) << uint(i*bitsPerValue)
		}
	}
	return data
}

func TestUnpackLongsRoundTripsAllBitWidths(t *testing.T) {
	n := 4096
	for bpv := 4; bpv <= 12; bpv++ {
		bpv := bpv
		t.Run(strconv.Itoa(bpv), func(t *testing.T) {
			maxVal := uint16((1 << uint(bpv)) - 1)
			values := make([]uint16, n)
			for i := range values {
				values[i] = uint16(i) % (maxVal + 1)
			}
			data := packLongs(values, bpv)
			got := unpackLongs(data, n)
			for i := range values {
				if got[i] != values[i] {
					t.Fatalf("bpv=%d: index %d: got %d want %d", bpv, i, got[i], values[i])
				}
			}
		})
	}
}

func TestUnpackLongsBiomePaletteSize(t *testing.T) {
	// 64 biome indices, palette size 4 needs 2 bits/value.
	values := make([]uint16, 64)
	for i := range values {
		values[i] = uint16(i % 4)
	}
	data := packLongs(values, 2)
	got := unpackLongs(data, 64)
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("index %d: got %d want %d", i, got[i], values[i])
		}
	}
}

func TestUnpackLongsPaletteSize17NeedsFiveBitsAnd342Longs(t *testing.T) {
	// S6: palette of size 17 -> 5 bits/value. No value spans two longs, so
	// each long holds 64/5 = 12 values -> ceil(4096/12) = 342 longs.
	n := 4096
	bpv := 5
	values := make([]uint16, n)
	for i := range values {
		values[i] = uint16(i % 17)
	}
	data := packLongs(values, bpv)
	wantLongs := int(math.Ceil(float64(n) / float64(64/bpv)))
	if len(data) != wantLongs {
		t.Fatalf("expected %d longs, got %d", wantLongs, len(data))
	}
	got := unpackLongs(data, n)
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("index %d: got %d want %d", i, got[i], values[i])
		}
	}
}

func TestUnpackLongsEmptyDataReturnsZeros(t *testing.T) {
	got := unpackLongs(nil, 64)
	for i, v := range got {
		if v != 0 {
			t.Fatalf("index %d: want 0 got %d", i, v)
		}
	}
}
