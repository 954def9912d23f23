package main

// @title Catalog & Inventory Service API
// @version 1.0
// @description Product catalog and stock tracking with atomic inventory adjustment.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/CCP-Proyecto/ccp-experimento

// @license.name MIT
// @license.url https://github.com/CCP-Proyecto/ccp-experimento/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @tag.name Product
// @tag.description Product catalog endpoints

// @tag.name Inventory
// @tag.description Inventory and stock adjustment endpoints

// @tag.name Health
// @tag.description Health check endpoints
