// Package judge answers ordered-set query batches in the format used by
// competitive programming judges.
//
// The input is "N Q", N initial values, then Q queries "t x":
//
//	0 x  insert x
//	1 x  erase x
//	2 x  print the x-th smallest member (1-indexed), or -1
//	3 x  print the number of members <= x
//	4 x  print the greatest member <= x, or -1
//	5 x  print the smallest member >= x, or -1
//
// Every value that appears anywhere in the input forms the set's universe.
package judge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/caio/go-ordstat"
)

// Query kinds.
const (
	Insert = iota
	Erase
	Kth
	CountLessOrEqual
	Floor
	Ceiling
)

// ErrMalformedInput is wrapped by every error caused by the input itself.
var ErrMalformedInput = errors.New("malformed input")

// Query is one "t x" line.
type Query struct {
	Kind  int
	Value int64
}

// Batch is a fully parsed input.
type Batch struct {
	Initial []int64
	Queries []Query
}

// how often Answer looks at its context
const checkEvery = 1 << 12

type tokenReader struct {
	scanner *bufio.Scanner
	read    int
}

func newTokenReader(r io.Reader) *tokenReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)
	return &tokenReader{scanner: scanner}
}

func (t *tokenReader) next() (int64, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: unexpected end of input after %d tokens", ErrMalformedInput, t.read)
	}
	t.read++
	v, err := strconv.ParseInt(t.scanner.Text(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: token %d: %v", ErrMalformedInput, t.read, err)
	}
	return v, nil
}

// Parse reads a whole batch from r.
func Parse(r io.Reader) (*Batch, error) {
	tokens := newTokenReader(r)

	n, err := tokens.next()
	if err != nil {
		return nil, fmt.Errorf("reading N: %w", err)
	}
	q, err := tokens.next()
	if err != nil {
		return nil, fmt.Errorf("reading Q: %w", err)
	}
	if n < 0 || q < 0 {
		return nil, fmt.Errorf("%w: negative sizes N=%d Q=%d", ErrMalformedInput, n, q)
	}

	b := &Batch{
		Initial: make([]int64, 0, min(n, 1<<20)),
		Queries: make([]Query, 0, min(q, 1<<20)),
	}
	for i := int64(0); i < n; i++ {
		v, err := tokens.next()
		if err != nil {
			return nil, fmt.Errorf("reading initial value %d: %w", i, err)
		}
		b.Initial = append(b.Initial, v)
	}
	for i := int64(0); i < q; i++ {
		kind, err := tokens.next()
		if err != nil {
			return nil, fmt.Errorf("reading query %d: %w", i, err)
		}
		if kind < Insert || kind > Ceiling {
			return nil, fmt.Errorf("%w: query %d has unknown type %d", ErrMalformedInput, i, kind)
		}
		v, err := tokens.next()
		if err != nil {
			return nil, fmt.Errorf("reading query %d: %w", i, err)
		}
		b.Queries = append(b.Queries, Query{Kind: int(kind), Value: v})
	}

	return b, nil
}

// Universe returns every value the batch touches, compressed.
func (b *Batch) Universe() []int64 {
	values := make([]int64, len(b.Queries))
	for i, query := range b.Queries {
		values[i] = query.Value
	}
	return ordstat.Compress(b.Initial, values)
}

// Stats summarises a finished run.
type Stats struct {
	Queries  int
	Answers  int
	Inserted int
	Erased   int
	Misses   int
}

// Answer runs the batch against a fresh set and writes one line per
// answering query to w.
func Answer(ctx context.Context, b *Batch, w io.Writer, logger *slog.Logger) (Stats, error) {
	var stats Stats

	s, err := ordstat.New(b.Universe())
	if err != nil {
		return stats, fmt.Errorf("building set: %w", err)
	}
	for _, v := range b.Initial {
		s.Insert(v)
	}
	logger.Debug("set ready", "universe", len(s.Universe()), "members", s.Len())

	out := bufio.NewWriter(w)
	answer := func(v int64, ok bool) {
		if !ok {
			v = -1
			stats.Misses++
		}
		out.WriteString(strconv.FormatInt(v, 10))
		out.WriteByte('\n')
		stats.Answers++
	}

	for i, query := range b.Queries {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				if flushErr := out.Flush(); flushErr != nil {
					return stats, fmt.Errorf("writing answers: %w", flushErr)
				}
				return stats, fmt.Errorf("stopped after %d queries: %w", i, err)
			}
			if i > 0 {
				logger.Debug("progress", "queries", i, "members", s.Len())
			}
		}

		x := query.Value
		switch query.Kind {
		case Insert:
			if s.Insert(x) {
				stats.Inserted++
			}
		case Erase:
			if s.Erase(x) {
				stats.Erased++
			}
		case Kth:
			if x < 1 || x > int64(s.Len()) {
				answer(0, false)
				break
			}
			answer(s.Kth(int(x - 1)))
		case CountLessOrEqual:
			answer(int64(s.CountLessOrEqual(x)), true)
		case Floor:
			answer(s.Floor(x))
		case Ceiling:
			answer(s.Ceiling(x))
		default:
			return stats, fmt.Errorf("%w: query %d has unknown type %d", ErrMalformedInput, i, query.Kind)
		}
		stats.Queries++
	}

	if err := out.Flush(); err != nil {
		return stats, fmt.Errorf("writing answers: %w", err)
	}
	return stats, nil
}

// Run parses a batch from r and writes its answers to w.
func Run(ctx context.Context, r io.Reader, w io.Writer, logger *slog.Logger) error {
	b, err := Parse(r)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}
	logger.Debug("input parsed", "initial", len(b.Initial), "queries", len(b.Queries))

	stats, err := Answer(ctx, b, w, logger)
	if err != nil {
		return err
	}

	logger.Info("batch answered",
		"queries", stats.Queries,
		"answers", stats.Answers,
		"inserted", stats.Inserted,
		"erased", stats.Erased,
		"misses", stats.Misses,
	)
	return nil
}
