// @title           carpicks API
// @version         1.0
// @description     REST API for the carpicks rental listing service.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /

package main

import (
	"carpicks_backend/internal/app"

	_ "carpicks_backend/docs"
)

func main() {
	app.Run()
}
