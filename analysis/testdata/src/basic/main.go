package main

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

var counter int

//purity:pure
func local() int {
	x := 42
	return x
}

//purity:impure
func readCounter() int {
	return counter
}

//purity:impure
func increment() {
	counter++
}

//purity:impure
func foo() int64 {
	return bar() + 1
}

//purity:impure
func bar() int64 {
	return time.Now().Unix()
}

//purity:unknown
func sorted(xs []int) []int {
	sort.Ints(xs)
	return xs
}

//purity:pure
func shout(s string) string {
	return strings.ToUpper(s) + "!"
}

//purity:pure
func describe(n int) string {
	return fmt.Sprintf("%d: %s", n, shout("n"))
}

//purity:impure
func main() {
	fmt.Println(foo(), local(), readCounter(), describe(1))
	increment()
	_ = sorted([]int{3, 1, 2})
}
