package main

import "fmt"

type shape interface {
	area() int
}

type square struct {
	side int
}

//purity:pure
func (s square) area() int {
	return s.side * s.side
}

type noisy struct{}

//purity:impure
func (noisy) area() int {
	fmt.Println("computing area")
	return 0
}

type quiet interface {
	size() int
}

type box struct{ w, h int }

//purity:pure
func (b box) size() int {
	return b.w * b.h
}

//purity:impure
func totalArea(shapes []shape) int {
	total := 0
	for _, s := range shapes {
		total += s.area()
	}
	return total
}

//purity:pure
func totalSize(qs []quiet) int {
	total := 0
	for _, q := range qs {
		total += q.size()
	}
	return total
}

//purity:impure
func main() {
	fmt.Println(totalArea([]shape{square{2}, noisy{}}), totalSize([]quiet{box{1, 2}}))
}
