package main

var total int

//purity:pure
func adder(x int) func(int) int {
	return func(y int) int { return x + y }
}

//purity:pure
func applyLocal(xs []int) int {
	sum := 0
	add := func(x int) { sum += x }
	for _, x := range xs {
		add(x)
	}
	return sum
}

//purity:impure
func accumulate(xs []int) {
	add := func(x int) { total += x }
	for _, x := range xs {
		add(x)
	}
}

//purity:impure
func deferred() {
	defer func() {
		println("done")
	}()
}

//purity:impure
func spawn() {
	go accumulate([]int{1})
}
