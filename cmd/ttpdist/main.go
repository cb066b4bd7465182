package main

import "github.com/goplus/ttpdist/cmd/ttpdist/internal"

func main() {
	internal.Execute()
}
