package main

import "github.com/lingomirror/lingomirror/cmd/lingomirror"

func main() { lingomirror.Execute() }
