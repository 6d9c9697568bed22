package main

import "github.com/shouni/go-rank-exact/cmd"

func main() {
	cmd.Execute()
}
