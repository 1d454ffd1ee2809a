package main

import (
	"context"

	"parsecquery/cmd/parsec-cli/commands"
	"parsecquery/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "parsec-cli")
	commands.ExecuteContext(context.Background())
}
