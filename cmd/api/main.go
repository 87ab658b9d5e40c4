package main

import (
	"log"

	"github.com/aloysiusChng/ppe-sentinel/internal/api"
)

// @title PPE Sentinel API
// @version 1.0
// @description Ingestion and query service for PPE compliance events captured by edge devices.
// @description
// @description ## Features
// @description - **Event Ingestion**: Edge devices post compliance events with optional zstd-compressed snapshots
// @description - **Event Queries**: Paginated, filterable event listings for dashboards
// @description - **Device Watchdog**: Periodic sweep flagging devices that have gone silent

// @contact.name API Support
// @contact.url https://github.com/aloysiusChng/ppe-sentinel

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey UploadKeyAuth
// @in header
// @name Authorization
// @description Shared upload key required to log events

func main() {
	srv := api.NewServer()
	if err := srv.Serve(); err != nil {
		log.Fatalf("api server stopped: %v", err)
	}
}
