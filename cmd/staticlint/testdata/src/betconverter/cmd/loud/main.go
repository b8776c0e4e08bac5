package main

import "fmt"

func main() {
	fmt.Println("binaries may print")
}
