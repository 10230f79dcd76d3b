// cmd/bcsync/main.go
package main

import (
	"bcsync/internal/app"
	"bcsync/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
