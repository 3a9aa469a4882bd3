package main

import (
	"dashboard-service/app"
	"dashboard-service/pkg/observability"
)

func main() {
	observability.StartProfiling("dashboard-service")
	app.Run()
}
