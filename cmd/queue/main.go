// Command queue drives one of the fixed-size queues from a line-oriented
// menu on stdin.
//
// Commands:
//
//	s      show the queued values
//	a N    add N
//	g      get (pop) the head
//	h      show the head without removing it
//	e      exit
//
// Usage:
//
//	go run ./cmd/queue -kind circle -size 3
//	printf 'a 1\na 2\ng\ns\ne\n' | go run ./cmd/queue -kind array
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/randomizedcoder/boundedbuffer/internal/queue"
)

func main() {
	kind := flag.String("kind", "circle", "queue kind: array, circle or channel")
	size := flag.Int("size", 3, "queue capacity")
	flag.Parse()

	var q queue.PushPopper[int]
	switch *kind {
	case "array":
		q = queue.NewArray[int](*size)
	case "circle":
		q = queue.NewCircle[int](*size)
	case "channel":
		q = queue.NewChannel[int](*size)
	default:
		fmt.Fprintf(os.Stderr, "unknown queue kind %q\n", *kind)
		os.Exit(2)
	}

	fmt.Printf("%s queue, capacity %d\n", *kind, q.Cap())
	fmt.Println("─────────────────────────────────────────────────────────")
	repl(os.Stdin, os.Stdout, q)
}

func repl(in io.Reader, out io.Writer, q queue.PushPopper[int]) {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprintln(out, "s(show) a(add) g(get) h(head) e(exit)")
		if !sc.Scan() {
			return
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "s":
			show(out, q)
		case "a":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: a N")
				continue
			}
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Fprintf(out, "not a number: %q\n", fields[1])
				continue
			}
			if err := queue.Add(q, v); err != nil {
				fmt.Fprintln(out, err)
			}
		case "g":
			v, err := queue.Get(q)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintf(out, "got %d\n", v)
		case "h":
			iq, ok := q.(queue.Queue[int])
			if !ok {
				fmt.Fprintln(out, "this queue cannot peek")
				continue
			}
			v, err := queue.Head(iq)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintf(out, "head %d\n", v)
		case "e":
			return
		default:
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
		}
	}
}

func show(out io.Writer, q queue.PushPopper[int]) {
	iq, ok := q.(queue.Queue[int])
	if !ok {
		fmt.Fprintf(out, "%d of %d queued\n", q.Len(), q.Cap())
		return
	}
	vals := iq.Values()
	if len(vals) == 0 {
		fmt.Fprintln(out, "queue is empty")
		return
	}
	for i, v := range vals {
		fmt.Fprintf(out, "[%d]=%d\n", i, v)
	}
}
