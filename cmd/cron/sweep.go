package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"hashfarm/internal/datastore"
	"hashfarm/internal/pkg/webhook"
	"hashfarm/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	tele "gopkg.in/telebot.v3"
)

const defaultSweepSchedule = "@every 1h"

type SweepJob struct {
	container *do.Injector
	webhook   *webhook.Client
	bot       *tele.Bot
	adminChat int64
}

func NewSweepJob(container *do.Injector) (*SweepJob, error) {
	job := &SweepJob{container: container}

	if url := os.Getenv("ALERT_WEBHOOK_URL"); url != "" {
		job.webhook = webhook.NewClient(url)
	}

	if token := os.Getenv("BOT_TOKEN"); token != "" {
		bot, err := tele.NewBot(tele.Settings{Token: token})
		if err != nil {
			return nil, err
		}

		chatID, err := strconv.ParseInt(os.Getenv("ADMIN_CHAT_ID"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("BOT_TOKEN set but ADMIN_CHAT_ID invalid: %w", err)
		}

		job.bot = bot
		job.adminChat = chatID
	}

	return job, nil
}

func (j *SweepJob) Start(cronRunner *cron.Cron) {
	schedule := defaultSweepSchedule

	postgresDB, err := do.Invoke[*bun.DB](j.container)
	if err != nil {
		log.Println(err)
		return
	}

	timeline, err := datastore.GetConfigByKey(context.Background(), postgresDB, services.CONFIG_CRONJOB_TIME_SWEEP)
	if err == nil && timeline != nil && timeline.Value != "" {
		schedule = timeline.Value
	}

	_, err = cronRunner.AddFunc(schedule, j.runScheduledTask)
	log.Println("Sweep Cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", schedule, err)
	j.runScheduledTask()
}

func (j *SweepJob) runScheduledTask() {
	ctx := context.Background()
	log.Println("Start rental expiry sweep ...")

	serviceSweep, err := do.Invoke[*services.ServiceSweep](j.container)
	if err != nil {
		log.Println(err)
		return
	}

	summary, err := serviceSweep.Sweep(ctx, time.Now())
	if err != nil {
		log.Println("sweep failed:", err)
		j.alert(fmt.Sprintf("⚠️ rental sweep failed: %v", err))
		return
	}

	if summary.Skipped {
		log.Println("Sweep skipped, another run holds the lock")
		return
	}

	log.Println("Sweep done. warned:", summary.ExpiringNotified, "removed:", summary.ExpiredRemoved)

	if j.webhook != nil {
		if err := j.webhook.Post(summary); err != nil {
			log.Println("webhook post failed:", err)
		}
	}
}

func (j *SweepJob) alert(msg string) {
	if j.webhook != nil {
		if err := j.webhook.Post(map[string]string{"error": msg}); err != nil {
			log.Println("webhook post failed:", err)
		}
	}

	if j.bot != nil {
		_, err := j.bot.Send(tele.ChatID(j.adminChat), msg)
		if err != nil {
			log.Println("telegram alert failed:", err)
		}
	}
}
