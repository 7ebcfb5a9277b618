package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"f1acleaderboard/pkg/bot"
	"f1acleaderboard/pkg/circuitimage"
	"f1acleaderboard/pkg/config"
	"f1acleaderboard/pkg/dashboard"
	"f1acleaderboard/pkg/live"
	"f1acleaderboard/pkg/notification"
	"f1acleaderboard/pkg/pubsub"
	"f1acleaderboard/pkg/sources/csvdir"
	"f1acleaderboard/pkg/sources/postgrest"
	"f1acleaderboard/pkg/sources/sqlstore"
	"f1acleaderboard/pkg/tables"
	"f1acleaderboard/pkg/webserver"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nikoksr/notify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const sourceTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(cfg.Level())

	// cancelled on SIGINT or SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not open data source")
	}
	defer closeSource()

	dm := dashboard.NewManager(source, cfg.TableNames())
	images := circuitimage.NewFetcher(cfg.ImageBaseURL, cfg.ImageTimeout, nil)

	ps := pubsub.NewPubSub[dashboard.Snapshot]()
	broadcaster := live.NewBroadcaster(dm, ps)

	var tgBot *tgbotapi.BotAPI
	if cfg.TelegramToken != "" {
		tgBot, err = tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			logrus.WithError(err).Fatal("could not connect to telegram")
		}
		// Set this to true to log all interactions with telegram servers
		tgBot.Debug = false
	}

	exitChan := make(chan bool)

	nm := notification.NewManager(ctx, notifiers(tgBot, cfg.NotifyChatIDs)...)
	go nm.Start(ps.Subscribe(live.TopicComparison), exitChan)

	ticker := time.NewTicker(cfg.RefreshInterval)
	broadcaster.Sync(ctx, ticker, exitChan)
	go broadcaster.Refresh(ctx)

	if tgBot != nil {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates := tgBot.GetUpdatesChan(u)
		go bot.New(tgBot, dm, images).Start(ctx, updates)
		logrus.Infof("telegram bot %s listening for updates", tgBot.Self.UserName)
	}

	ws := webserver.NewManager(dm, images, broadcaster)
	ws.Debug()
	if err := ws.Serve(ctx, cfg.WebserverAddress); err != nil {
		logrus.WithError(err).Error("webserver stopped")
	}

	ticker.Stop()
	close(exitChan)
	if tgBot != nil {
		tgBot.StopReceivingUpdates()
	}
}

func openSource(ctx context.Context, cfg config.Config) (tables.Source, func(), error) {
	noop := func() {}
	switch cfg.DataSource {
	case config.SourcePostgREST:
		client := &http.Client{Timeout: sourceTimeout}
		src := postgrest.NewSource(cfg.SupabaseURL, cfg.SupabaseKey, client)
		src.SetPageSize(cfg.SupabasePageSize)
		return src, noop, nil
	case config.SourceSQLite, config.SourcePostgres:
		driver := sqlstore.DriverSQLite
		if cfg.DataSource == config.SourcePostgres {
			driver = sqlstore.DriverPostgres
		}
		store, err := sqlstore.Open(ctx, driver, cfg.DatabaseDSN)
		if err != nil {
			return nil, noop, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logrus.WithError(err).Warn("could not close database")
			}
		}, nil
	case config.SourceCSV:
		return csvdir.NewSource(cfg.CSVDir), noop, nil
	}
	return nil, noop, errors.Errorf("unknown data source %q", cfg.DataSource)
}

func notifiers(tgBot *tgbotapi.BotAPI, chatIDs []int64) []notify.Notifier {
	services := []notify.Notifier{notification.Log{}}
	if tgBot != nil && len(chatIDs) > 0 {
		tg := &notification.Telegram{}
		tg.SetClient(tgBot)
		tg.AddReceivers(chatIDs...)
		services = append(services, tg)
	}
	return services
}
