// Package web provides the HTTP server and web interface for go-supplydemand
package web

/*

	### **Files:**
	1. **`webserver_core_routes.go`** - Server setup, route configuration, Start/Shutdown
	2. **`web_homePage.go`** - Root page handler ("/")
	3. **`web_renderer.go`** - TemplateRenderer interface and the on-disk FileRenderer
	4. **`web_static.go`** - Static files below /static (no directory listings)
	5. **`web_utils.go`** - Error responses

*/
