package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/marali-ops/aktien_checker/app/dashboard/internal/conf"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	Name    = "aktien-dashboard"
	Version = "dev"

	flagconf    string
	flagversion bool

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/dashboard/configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.BoolVar(&flagversion, "version", false, "print version and exit")
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{"ui": "de"}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}

// loadBootstrap 读取配置文件，${NEWS_API_KEY:} 等占位符由环境变量解析
func loadBootstrap(path string) (*conf.Bootstrap, error) {
	c := config.New(config.WithSource(
		file.NewSource(path),
		env.NewSource(),
	))
	defer c.Close()

	if err := c.Load(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		return nil, fmt.Errorf("scan config: %w", err)
	}
	return &bc, nil
}

func main() {
	flag.Parse()
	if flagversion {
		fmt.Println(Name, Version)
		return
	}

	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.name", Name,
		"service.version", Version,
	)
	helper := log.NewHelper(logger)

	bc, err := loadBootstrap(flagconf)
	if err != nil {
		helper.Fatal(err)
	}

	app, cleanup, err := initApp(bc.Server, bc.Briefing, logger)
	if err != nil {
		helper.Fatalf("init app: %v", err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		helper.Errorf("dashboard stopped: %v", err)
	}
}
