package models

import "time"

// Review is a customer rating of a product. A user may review a given
// model at most once.
type Review struct {
	ID         int       `db:"id" json:"-"`
	Model      string    `db:"model" json:"model"`
	Username   string    `db:"username" json:"user"`
	Score      int       `db:"score" json:"score"`
	ReviewDate Date      `db:"review_date" json:"date"`
	Comment    string    `db:"comment" json:"comment"`
	CreatedAt  time.Time `db:"created_at" json:"-"`
}
