package arena

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/memarena/internal/format"
)

// Status is the state of a block.
type Status uint8

const (
	StatusFree Status = iota + 1
	StatusBusy
)

func (s Status) String() string {
	switch s {
	case StatusFree:
		return "Free"
	case StatusBusy:
		return "Busy"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// MarshalText lets Status render as "Free"/"Busy" in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses "Free" or "Busy".
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Free":
		*s = StatusFree
	case "Busy":
		*s = StatusBusy
	default:
		return fmt.Errorf("arena: unknown block status %q", text)
	}
	return nil
}

// BlockInfo describes one block as Dump renders it. Offsets are relative to
// the start of the region.
type BlockInfo struct {
	Index     int    `json:"index"`      // 1-based position in the list
	Status    Status `json:"status"`     // Free or Busy
	Begin     int    `json:"begin"`      // offset of the first payload byte (the handle for busy blocks)
	End       int    `json:"end"`        // offset one past the last payload byte
	Size      int    `json:"size"`       // payload bytes
	TotalSize int    `json:"total_size"` // payload plus header
	Header    int    `json:"header"`     // offset of the header
}

// Counters track operation outcomes. Every Allocate or Release call that
// returns an error counts as a failure, whatever the cause.
type Counters struct {
	Allocs          int `json:"allocs"`
	AllocFailures   int `json:"alloc_failures"`
	Releases        int `json:"releases"`
	ReleaseFailures int `json:"release_failures"`
	Splits          int `json:"splits"`
	CoalesceRight   int `json:"coalesce_right"`
	CoalesceLeft    int `json:"coalesce_left"`
}

// Stats is a snapshot of the block list totals. Byte counts include headers.
type Stats struct {
	BusyBytes   int      `json:"busy_bytes"`
	FreeBytes   int      `json:"free_bytes"`
	TotalBytes  int      `json:"total_bytes"`
	Blocks      int      `json:"blocks"`
	BusyBlocks  int      `json:"busy_blocks"`
	FreeBlocks  int      `json:"free_blocks"`
	LargestFree int      `json:"largest_free"` // largest free payload, the biggest request that can succeed
	Ops         Counters `json:"ops"`
}

// Blocks returns a snapshot of the block list in address order. It returns
// an empty slice before Init.
func (a *Arena) Blocks() ([]BlockInfo, error) {
	if !a.initialized {
		return []BlockInfo{}, nil
	}
	var out []BlockInfo
	for off := 0; off != format.NoNext; {
		b, err := a.blockAt(off)
		if err != nil {
			return nil, err
		}
		st := StatusBusy
		if b.Free() {
			st = StatusFree
		}
		out = append(out, BlockInfo{
			Index:     len(out) + 1,
			Status:    st,
			Begin:     int(b.payload()),
			End:       b.end(),
			Size:      int(b.Size),
			TotalSize: HeaderSize + int(b.Size),
			Header:    b.off,
		})
		off = int(b.Next)
	}
	return out, nil
}

// Stats returns block-list totals and operation counters.
func (a *Arena) Stats() (Stats, error) {
	blocks, err := a.Blocks()
	if err != nil {
		return Stats{}, err
	}
	s := Stats{Blocks: len(blocks), Ops: a.ops}
	for _, b := range blocks {
		if b.Status == StatusBusy {
			s.BusyBytes += b.TotalSize
			s.BusyBlocks++
			continue
		}
		s.FreeBytes += b.TotalSize
		s.FreeBlocks++
		s.LargestFree = max(s.LargestFree, b.Size)
	}
	s.TotalBytes = s.BusyBytes + s.FreeBytes
	return s, nil
}

const dumpRule = 81

// Dump writes a table of every block followed by busy, free and overall
// totals. It never modifies the arena.
//
//	No.  Status  Begin       End         Size  Total  Header
//	1    Busy    0x00000010  0x00000074  100   116    0x00000000
func (a *Arena) Dump(w io.Writer) error {
	blocks, err := a.Blocks()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	stars := strings.Repeat("*", dumpRule)
	dashes := strings.Repeat("-", dumpRule)

	fmt.Fprintln(bw, centered("Block list", dumpRule))
	fmt.Fprintln(bw, "No.\tStatus\tBegin\t\tEnd\t\tSize\tTotal\tHeader")
	fmt.Fprintln(bw, dashes)

	var busy, free int
	for _, b := range blocks {
		fmt.Fprintf(bw, "%d\t%s\t0x%08x\t0x%08x\t%d\t%d\t0x%08x\n",
			b.Index, b.Status, b.Begin, b.End, b.Size, b.TotalSize, b.Header)
		if b.Status == StatusBusy {
			busy += b.TotalSize
		} else {
			free += b.TotalSize
		}
	}

	fmt.Fprintln(bw, dashes)
	fmt.Fprintln(bw, stars)
	fmt.Fprintf(bw, "Total busy size = %d\n", busy)
	fmt.Fprintf(bw, "Total free size = %d\n", free)
	fmt.Fprintf(bw, "Total size = %d\n", busy+free)
	fmt.Fprintln(bw, stars)
	return bw.Flush()
}

// centered pads title with asterisks on both sides to width.
func centered(title string, width int) string {
	pad := width - len(title)
	if pad <= 0 {
		return title
	}
	left := pad / 2
	return strings.Repeat("*", left) + title + strings.Repeat("*", pad-left)
}
