package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"hashfarm/internal/datastore"
	"hashfarm/internal/models"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandSeedDevices(),
			commandSeedConfig(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUser(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableDevice(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableRental(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableNotification(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			log.Println("migration done")
			return nil
		},
	}
}

func commandSeedDevices() *cli.Command {
	devices := []models.Device{
		{Slug: "antminer-s9", Name: "Antminer S9", Power: 13.5, DailyReward: 0.8, BonusPercent: 0, DurationDays: 30, Price: 120, Active: true},
		{Slug: "antminer-s19", Name: "Antminer S19", Power: 95, DailyReward: 6.2, BonusPercent: 5, DurationDays: 60, Price: 780, Active: true},
		{Slug: "whatsminer-m30s", Name: "Whatsminer M30S", Power: 86, DailyReward: 5.6, BonusPercent: 3, DurationDays: 45, Price: 640, Active: true},
		{Slug: "avalon-a1246", Name: "Avalon A1246", Power: 90, DailyReward: 5.9, BonusPercent: 4, DurationDays: 90, Price: 820, Active: true},
	}

	return &cli.Command{
		Name: "seed-devices",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			for _, device := range devices {
				device := device
				err := datastore.InsertDevice(ctx, db, &device)
				if err != nil {
					log.Println("seed device", device.Slug, "error:", err)
					continue
				}
				log.Println("seeded device", device.Slug)
			}

			return nil
		},
	}
}

func commandSeedConfig() *cli.Command {
	configs := []models.Config{
		{Key: "CRONJOB_TIME_SWEEP", Value: "@every 1h"},
		{Key: "SWEEP_WORKERS", Value: "8"},
		{Key: "EXPIRY_WARNING_DAYS", Value: "7"},
		{Key: "NOTIFY_DEDUP_HOURS", Value: "24"},
	}

	return &cli.Command{
		Name: "seed-config",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			for _, config := range configs {
				err := datastore.InsertConfig(ctx, db, config)
				if err != nil {
					log.Println("seed config", config.Key, "error:", err)
					continue
				}
				log.Println("seeded config", config.Key)
			}

			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	return bun.NewDB(sqldb, pgdialect.New()), nil
}
