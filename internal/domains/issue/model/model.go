package model

import "myfunzone/shared/model"

const (
	TableName  = "issue_reports"
	EntityName = "issue_report"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldGameID      = "game_id"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldStatus      = "status"
)

type IssueReport struct {
	ID          string `db:"id"`
	UserID      string `db:"user_id"`
	GameID      string `db:"game_id"`
	Category    string `db:"category"`
	Description string `db:"description"`
	Status      string `db:"status"`
	model.Metadata
}

type IssueReportDetail struct {
	ID          string `db:"id"`
	UserID      string `db:"user_id"`
	GameID      string `db:"game_id"`
	Category    string `db:"category"`
	Description string `db:"description"`
	Status      string `db:"status"`
	Username    string `db:"username"  table:"users"`
	GameName    string `db:"game_name" table:"games" column:"name"`
	model.Metadata
}

func (IssueReportDetail) GetJoinQuery() string {
	return `JOIN users ON users.id = issue_reports.user_id
		JOIN games ON games.id = issue_reports.game_id`
}
