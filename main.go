package main

import "github.com/oleksandr38kebab342/log-csv-git/internal/cmd"

func main() {
	cmd.Execute()
}
