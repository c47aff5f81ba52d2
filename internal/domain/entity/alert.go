package entity

import "time"

// Alert is a saved search re-run on a cron schedule that notifies the user
// only when the minimum price strictly improved since the previous run
type Alert struct {
	ID             string    `bson:"_id,omitempty"`
	UserID         string    `bson:"userId"`
	ChatID         int64     `bson:"chatId"`
	Search         string    `bson:"search"`
	CronExpr       string    `bson:"cronExpr"`
	PreviousResult string    `bson:"previousResult"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

// CronJob is a saved search re-run on a cron schedule with no diffing: every
// fire pushes the fresh result to the user
type CronJob struct {
	ID        string    `bson:"_id,omitempty"`
	UserID    string    `bson:"userId"`
	ChatID    int64     `bson:"chatId"`
	Search    string    `bson:"search"`
	CronExpr  string    `bson:"cronExpr"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}
