package models

import "time"

// QuizHistory is the database row shape for one stored quiz
type QuizHistory struct {
	ID        int64     `db:"id"`
	URL       string    `db:"url"`
	Title     string    `db:"title"`
	QuizJSON  string    `db:"quiz_json"`
	Summary   string    `db:"summary"`
	CreatedAt time.Time `db:"created_at"`
}
