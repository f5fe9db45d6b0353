package main

import "github.com/dnitsch/aws-sigv4-auth/cmd"

func main() {
	cmd.Execute()
}
