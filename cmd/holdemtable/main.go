package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/weedbox/holdemtable"
	"github.com/weedbox/holdemtable/actor"
	"github.com/weedbox/holdemtable/blind"
	"github.com/weedbox/holdemtable/config"
	"github.com/weedbox/holdemtable/event_publisher"
	"github.com/weedbox/holdemtable/event_store"
	"github.com/weedbox/holdemtable/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Mode)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := blind.NewFixedBlind(cfg.Table.SmallBlind, cfg.Table.BigBlind)
	if err != nil {
		return err
	}

	opts := []holdemtable.ManagerOpt{
		holdemtable.WithLogger(log),
		holdemtable.WithBlind(b),
		holdemtable.WithAutoStartNextHand(cfg.Table.ReadyTimeoutSec),
		holdemtable.WithActionTimeout(time.Duration(cfg.Table.ActionTimeoutSec) * time.Second),
	}

	if cfg.EventStore.Driver == config.Store_SQLite {
		store, err := event_store.Open(cfg.EventStore.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, holdemtable.WithEventLog(store))
	}

	if cfg.Redis.Enabled {
		client := event_publisher.NewRedisClient(event_publisher.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		opts = append(opts, holdemtable.WithPublisher(event_publisher.NewRedisPublisher(client, cfg.Redis.ChannelPrefix, log)))
	}

	tableID := uuid.New().String()
	done := make(chan struct{})
	var once sync.Once
	bots := make([]*actor.BotRunner, 0, len(cfg.Bot.Players))

	callbacks := holdemtable.NewManagerCallbacks()
	callbacks.OnTableUpdated = func(t *holdemtable.Table) {
		if t.CurrentHand == nil && t.HandsPlayed > 0 {
			log.Info("hand completed",
				zap.String("table_id", t.ID),
				zap.Int("hands_played", t.HandsPlayed),
				zap.Any("chips", t.ChipsInBack),
			)
		}

		if t.HandsPlayed >= cfg.Bot.Hands || len(playersWithChips(t)) < 2 {
			once.Do(func() { close(done) })
			return
		}

		for _, bot := range bots {
			if err := bot.UpdateTableState(t); err != nil {
				log.Warn("bot failed to react", zap.String("player_id", bot.PlayerID()), zap.Error(err))
			}
		}
	}
	callbacks.OnTableErrorUpdated = func(t *holdemtable.Table, err error) {
		log.Warn("table command rejected", zap.String("table_id", t.ID), zap.Error(err))
	}
	opts = append(opts, holdemtable.WithCallbacks(callbacks))

	manager := holdemtable.NewManager(opts...)
	defer manager.Close()

	for _, playerID := range cfg.Bot.Players {
		bot := actor.NewBotRunner(manager, tableID, playerID, rand.New(rand.NewSource(time.Now().UnixNano())))
		bot.SetLogger(log)
		bot.Humanized(cfg.Bot.Humanized, 2)
		bots = append(bots, bot)
	}

	if _, err := manager.CreateTable(ctx, holdemtable.CreateTable{
		TableID:       tableID,
		GameID:        uuid.New().String(),
		NumberOfSeats: cfg.Table.NumberOfSeats,
		StartingChips: cfg.Table.StartingChips,
		Players:       holdemtable.NewJoinPlayers(cfg.Bot.Players),
		RandomSeats:   true,
	}); err != nil {
		return err
	}

	select {
	case <-done:
	case <-ctx.Done():
	}

	table, err := manager.GetTable(context.Background(), tableID)
	if err != nil {
		return err
	}

	encoded, err := table.GetJSON()
	if err != nil {
		return err
	}
	log.Info("table finished", zap.String("table", encoded))
	return nil
}

func playersWithChips(t *holdemtable.Table) []string {
	playerIDs := make([]string, 0)
	for _, playerID := range t.PlayerIDs() {
		if t.Chips(playerID) > 0 {
			playerIDs = append(playerIDs, playerID)
		}
	}
	return playerIDs
}
