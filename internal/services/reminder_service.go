package services

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"yatrasathi/internal/repositories"
	"yatrasathi/internal/utils"
)

// ReminderService logs a daily summary of next-day travel so the desk can
// chase pending confirmations. Runs at 09:00 local time.
type ReminderService struct {
	Tickets repositories.TicketRepository
}

func (s ReminderService) Start() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		return nil, err
	}
	_, err = sched.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(9, 0, 0),
			),
		),
		gocron.NewTask(s.SendTravelReminders),
	)
	if err != nil {
		return nil, err
	}
	sched.Start()
	return sched, nil
}

// SendTravelReminders lists requests travelling tomorrow and logs them.
// Delivery channels (SMS/mail) hang off this hook later.
func (s ReminderService) SendTravelReminders() {
	tomorrow := utils.FormatDate(time.Now().AddDate(0, 0, 1))
	tickets, err := s.Tickets.ListByTravelDate(tomorrow)
	if err != nil {
		utils.LogEvent("", "reminder", "daily", "list failed: "+err.Error())
		return
	}
	if len(tickets) == 0 {
		return
	}
	ids := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.ID)
	}
	utils.LogEvent("", "reminder", "daily", fmt.Sprintf("travel_date=%s count=%d ids=%v", tomorrow, len(tickets), ids))
}
