package puritycheck

import (
	"io"
	"time"
)

var total int

//purity:pure
func add(x, y int) int {
	return x + y
}

//purity:pure
func now() int64 { // want `now is Impure, expected Pure`
	return time.Now().Unix()
}

//purity:impure
func sum(xs []int) int {
	for _, x := range xs {
		total += x
	}
	return total
}

//purity:unknown
func write(w io.Writer) error {
	_, err := w.Write(nil)
	return err
}

//purity:impure
func double(x int) int { // want `double is Pure, expected Impure`
	return add(x, x)
}

func undocumented() int64 { return now() }
