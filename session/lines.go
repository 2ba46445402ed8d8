package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// RunLines runs s over the lines read from in, without any terminal handling.
// The proof is written on out after every input that changes it.
// It returns when the user quits, when every sequent was seen, or at the end of in.
func RunLines(ctx context.Context, s *Session, in io.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)
	show := func() {
		fmt.Fprintf(w, "-- %s\n%s\n", s.Status(), s.Render())
	}
	show()
	if err := w.Flush(); err != nil {
		return err
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := s.Exec(ctx, sc.Text())
		switch {
		case err != nil:
			fmt.Fprintf(w, "error: %v\n", err)
		case res.Kind == Quit:
			return w.Flush()
		case res.Kind == Finished:
			fmt.Fprintln(w, res.Message)
			return w.Flush()
		case res.Kind == Message, res.Kind == Help:
			fmt.Fprintln(w, res.Message)
		default:
			if res.Message != "" {
				fmt.Fprintln(w, res.Message)
			}
			show()
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return sc.Err()
}
