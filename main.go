package main

import "github.com/Dhrumivyas20/placement-portal/cmd"

func main() {
	cmd.Execute()
}
