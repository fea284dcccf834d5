package main

import (
	"fmt"

	"github.com/awslabs/go-purity/analysis/purity"
)

//purity:unknown
func worst() purity.Purity {
	return purity.Meet(purity.Pure, purity.Impure)
}

//purity:pure
func one() int {
	return 1
}

//purity:impure
func main() {
	fmt.Println(worst(), one())
}
