package main

import (
	"io"
	"os"
)

type point struct {
	x, y int
}

//purity:pure
func (p point) norm1() int {
	return abs(p.x) + abs(p.y)
}

//purity:pure
func (p *point) scale(k int) {
	p.x *= k
	p.y *= k
}

//purity:impure
func (p *point) save(f *os.File) error {
	_, err := f.WriteString("point")
	return err
}

//purity:pure
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

//purity:unknown
func write(w io.Writer, b []byte) {
	w.Write(b)
}

//purity:unknown
func apply(f func(int) int, x int) int {
	return f(x)
}

type stack[T any] struct {
	items []T
}

//purity:pure
func (s *stack[T]) push(x T) {
	s.items = append(s.items, x)
}

//purity:pure
func pushAll(xs []int) *stack[int] {
	s := &stack[int]{}
	for _, x := range xs {
		s.push(x)
	}
	return s
}
