package models

// Rule is a row of the rules table.
type Rule struct {
	RuleID      int64   `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Frequency   string  `db:"frequency"`
	TaskTitle   string  `db:"task_title"`
	TaskNotes   *string `db:"task_notes"`
	Active      bool    `db:"active"`
	AuditFields
}

// RuleCondition is a row of the rule_conditions table.
type RuleCondition struct {
	ConditionID int64  `db:"id"`
	RuleID      int64  `db:"rule_id"`
	Field       string `db:"field"`
	Operator    string `db:"operator"`
	Value       string `db:"value"`
}
