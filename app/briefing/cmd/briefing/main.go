package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/config"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/engine"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/logger"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/quote"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/render"
	"github.com/marali-ops/aktien_checker/app/briefing/pkg/watchlist"
)

var (
	flagconf  string
	flagout   string
	flagwatch string
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/briefing/configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagout, "out", "output/index.html", "html output path")
	flag.StringVar(&flagwatch, "watch", "", "comma separated tickers to put on the snapshot watchlist, eg: -watch SAP.DE,RHM.DE")
}

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动晨报生成...")
	for _, key := range cfg.MissingSecrets() {
		logger.Log.Warnf("缺少密钥: %s", key)
	}

	ctx := context.Background()

	// 3. 初始化引擎
	quotes := quote.NewService(quote.NewYahooClient(cfg.Quotes.BaseURL), cfg.Quotes.Days)
	eng, err := engine.NewEngine(ctx, cfg, quotes)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}

	// 4. 生成晨报
	briefing := eng.Run(ctx, engine.RunOptions{
		ProgressCallback: func(status string, progress int) {
			logger.Log.Debugf("进度 %d%%: %s", progress, status)
		},
	})

	// 5. 可选的自选股快照
	store := watchlist.NewStore()
	tracker := watchlist.NewTracker(quotes)
	if flagwatch != "" {
		for _, t := range strings.Split(flagwatch, ",") {
			if _, err := tracker.Add(ctx, store, t); err != nil {
				logger.Log.Warnf("自选股 [%s] 加入失败: %v", t, err)
			}
		}
	}
	entries := store.Entries()
	rows := tracker.Rows(ctx, entries)

	// 6. 生成 HTML
	if err := os.MkdirAll(filepath.Dir(flagout), 0755); err != nil {
		logger.Log.Fatalf("无法创建输出目录: %v", err)
	}
	f, err := os.Create(flagout)
	if err != nil {
		logger.Log.Fatalf("无法创建输出文件: %v", err)
	}
	defer f.Close()

	page := render.Page{
		Briefing:  briefing,
		Watchlist: rows,
		Hidden:    len(entries) - len(rows),
	}
	if err := render.Render(f, page); err != nil {
		logger.Log.Fatalf("生成 HTML 失败: %v", err)
	}

	logger.Log.Infof("✅ 晨报生成完毕: %s", flagout)
}
