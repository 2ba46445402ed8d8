package session

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/uben0/prove/sequent"
)

// LoadSequents reads one sequent per line.
// Blank lines and lines starting with # are ignored.
func LoadSequents(r io.Reader) ([]sequent.Sequent, error) {
	var res []sequent.Sequent
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		s, err := sequent.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		res = append(res, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read sequents: %w", err)
	}
	return res, nil
}

// LoadFile reads the sequents of the file at path.
func LoadFile(path string) ([]sequent.Sequent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open sequents: %w", err)
	}
	defer f.Close()
	res, err := LoadSequents(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}
