package main

import "sort"

//purity:pure
func fact(n int) int {
	if n <= 1 {
		return 1
	}
	return n * fact(n-1)
}

//purity:pure
func even(n int) bool {
	if n == 0 {
		return true
	}
	return odd(n - 1)
}

//purity:pure
func odd(n int) bool {
	if n == 0 {
		return false
	}
	return even(n - 1)
}

//purity:impure
func ping(n int) {
	if n > 0 {
		pong(n - 1)
	}
}

//purity:impure
func pong(n int) {
	println("pong", n)
	ping(n)
}

//purity:unknown
func walk(xs []int, depth int) []int {
	if depth == 0 {
		sort.Ints(xs)
		return xs
	}
	return walk(xs, depth-1)
}

//purity:pure
func parity(n int) (int, bool) {
	return fact(n), even(n)
}
