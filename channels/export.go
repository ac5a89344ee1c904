package channels

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Export writes every channel as text: values of a row separated by a
// space, rows terminated by a newline, and one blank line after each
// channel. Empty channels produce no output.
func (c Collection) Export(w io.Writer) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	for _, ch := range c {
		if ch.Grid.Empty() {
			continue
		}
		for y := range ch.Grid.Rows() {
			for x, v := range ch.Grid.Row(y) {
				if x > 0 {
					bw.WriteByte(' ')
				}
				buf = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
				bw.Write(buf)
			}
			bw.WriteByte('\n')
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("could not write channel %d: %w", ch.Index, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not flush results: %w", err)
	}
	return nil
}
