package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/simonhull/spikeglx"
)

// Prints the raw lane bits of the sync channel, one sample per line, to check
// what the edge detector sees.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: lane-dump <file.bin> [samples]")
		os.Exit(1)
	}

	limit := 64
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n <= 0 {
			fmt.Printf("Error: invalid sample count %q\n", os.Args[2])
			os.Exit(1)
		}
		limit = n
	}

	rec, err := spikeglx.OpenRecording(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer rec.Close()

	sync := rec.SyncChannel()
	if len(sync) > limit {
		sync = sync[:limit]
	}

	fmt.Println("sample   word  lanes 15..0")
	for i, lanes := range spikeglx.Lanes(sync) {
		bits := make([]byte, len(lanes))
		for b, set := range lanes {
			c := byte('.')
			if set {
				c = '1'
			}
			bits[len(lanes)-1-b] = c
		}
		fmt.Printf("%6d %6d  %s\n", i, sync[i], bits)
	}
}
