package main

import (
	"github.com/NVIDIA/dataset-api/pkg/cli"
)

func main() {
	cli.Execute()
}
