/*
Package feed turns a cron schedule into a producer for an mpsc channel.

A Feed holds its own clone of a Sender and sends one produced message each
time its schedule fires:

	tx, rx := mpsc.New[time.Time]()
	f, err := feed.New(tx, feed.Config{Name: "ticks", Schedule: "@every 1s", MaxFires: 3},
		func(now time.Time) time.Time { return now })
	if err != nil {
		log.Fatal(err)
	}
	tx.Close() // the feed's clone keeps the channel open
	f.Start()

	for t := range rx.All() {
		fmt.Println(t)
	}

Schedules are parsed by github.com/robfig/cron/v3 with an optional seconds
field. When MaxFires is reached, or Stop is called, the feed closes its
clone; once every other Sender is closed too, the receiver sees closure.
*/
package feed
