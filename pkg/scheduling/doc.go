/*
Package scheduling provides time-driven producers for handoff channels.

  - feed: sends one produced message each time a cron schedule fires

Feed:

	tx, rx := mpsc.New[Tick]()
	f, _ := feed.New(tx, feed.Config{Name: "ticks", Schedule: "@every 10s"},
		func(now time.Time) Tick { return Tick{At: now} })
	tx.Close()
	f.Start()
	defer f.Stop()

Schedules follow github.com/robfig/cron/v3 syntax with an optional seconds
field, and descriptors such as "@hourly" or "@every 30s".
*/
package scheduling
