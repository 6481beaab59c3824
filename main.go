package main

import (
	"matrun/cmd"
)

var (
	VerBranch = "Prod."
	VerStatus = "Stable"
	VerNumber = "1.2.0"
	VerCommit = "dev"
)

func main() {
	cmd.Execute(cmd.VersionInfo{
		Branch: VerBranch,
		Status: VerStatus,
		Number: VerNumber,
		Commit: VerCommit,
	})
}
