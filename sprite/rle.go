package sprite

import "encoding/hex"

// Run is a run-length pair: Count repetitions of the palette index Value.
type Run struct {
	Count uint8
	Value uint8
}

// RunLength collapses a palette index stream into maximal runs, splitting
// any run longer than 255 so the count fits one byte. An empty stream
// yields no runs.
func RunLength(stream []uint8) []Run {
	if len(stream) == 0 {
		return nil
	}

	var runs []Run
	cur := Run{Count: 1, Value: stream[0]}

	for _, v := range stream[1:] {
		if v != cur.Value || cur.Count == maxRun {
			runs = append(runs, cur)
			cur = Run{Count: 1, Value: v}
			continue
		}
		cur.Count++
	}

	return append(runs, cur)
}

func appendRuns(b []byte, runs []Run) []byte {
	for _, r := range runs {
		b = append(b, r.Count, r.Value)
	}
	return b
}

// EncodeRuns returns the runs for stream together with their wire form: one
// fixed-width lowercase hex (count, value) byte pair per run. Expanding the
// pairs left to right reproduces stream exactly.
func EncodeRuns(stream []uint8) ([]Run, string) {
	runs := RunLength(stream)
	return runs, hex.EncodeToString(appendRuns(make([]byte, 0, len(runs)*2), runs))
}
