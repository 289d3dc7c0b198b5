package main

import (
	"crickrank/cmd/crickrank/commands"
	"crickrank/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
