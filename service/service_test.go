package service

import (
	"os"

	"github.com/lifesevatra/doctor-server/config"
)

func init() {
	os.Setenv("SERVER_ENV", "test")
	config.SetupAll()
}
