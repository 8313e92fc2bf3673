package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var filenameReplacer = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_", "/", "_",
	`\`, "_", "|", "_", "?", "_", "*", "_",
)

// SanitizeName makes a species name safe to use as a file name.
func SanitizeName(name string) string {
	return filenameReplacer.Replace(name)
}

// SaveSpecies writes a tab-separated two-column file (axis, species) named
// after the species into dir and returns its path.
func SaveSpecies(dir, axisName string, axis []float64, species string, values []float64) (string, error) {
	if len(axis) != len(values) {
		return "", fmt.Errorf("species %s: %d values for %d axis points", species, len(values), len(axis))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, SanitizeName(species)+".txt")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\t%s\n", axisName, species)
	for i := range axis {
		w.WriteString(strconv.FormatFloat(axis[i], 'g', -1, 64))
		w.WriteByte('\t')
		w.WriteString(strconv.FormatFloat(values[i], 'g', -1, 64))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, f.Close()
}
