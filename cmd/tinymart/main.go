package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"tinymart/config"
	"tinymart/internal/app"
	"tinymart/internal/catalog"
	"tinymart/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	x        = flag.Bool("x", false, "debug mode")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema")
	conffile = flag.String("c", "/etc/tinymart.yml", "config file")
)

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)
	if *x {
		cfg.System.Debug = true
		cfg.Database.Debug = true
	}

	_ = os.MkdirAll(cfg.System.Workdir, 0755)
	_ = os.MkdirAll(cfg.GetLogDir(), 0755)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		fmt.Println("database initialized")
		os.Exit(0)
	}

	repo := catalog.NewGormProductRepository(application.DB())
	service := catalog.NewProductService(repo)
	server := webserver.NewWebServer(cfg, service)

	if err := server.Start(); err != nil {
		zap.L().Fatal("web server stopped", zap.Error(err))
	}
}
