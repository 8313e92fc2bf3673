package tecplot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const valuesPerLine = 5

// Write emits t in BLOCK packing, the layout Parse reads.
func Write(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "TITLE = \"%s\"\n", t.Name)
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = strconv.Quote(c.Name)
	}
	fmt.Fprintf(bw, "VARIABLES = %s\n", strings.Join(names, " "))
	fmt.Fprintf(bw, "ZONE T=\"%s\", I=%d, DATAPACKING=BLOCK\n", t.Name, t.Points())

	for _, c := range t.Columns {
		for i, v := range c.Values {
			bw.WriteString(strconv.FormatFloat(v, 'e', -1, 64))
			if (i+1)%valuesPerLine == 0 || i == len(c.Values)-1 {
				bw.WriteByte('\n')
			} else {
				bw.WriteByte(' ')
			}
		}
	}
	return bw.Flush()
}

func WriteFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
