package main

import (
	"github.com/azlift/azlift/cmd/azlift/cmd"
	logf "github.com/azlift/azlift/pkg/log"
)

func main() {
	logf.SetLogger(logf.ZapLogger(true))
	cmd.Execute()
}
