package main

import (
	"github.com/lehigh-university-libraries/nativeimport/cmd"
)

func main() {
	cmd.Execute()
}
